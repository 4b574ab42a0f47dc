package resource

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Summary is the list-view projection of a custom resource.
type Summary struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	Synced    *bool  `json:"synced"`
	Ready     *bool  `json:"ready"`
}

// ConditionStatus reads status.conditions[type]. It returns nil when the
// condition is missing or neither "True" nor "False".
func ConditionStatus(obj *unstructured.Unstructured, conditionType string) *bool {
	conditions, found, err := unstructured.NestedSlice(obj.Object, "status", "conditions")
	if err != nil || !found {
		return nil
	}
	for _, c := range conditions {
		cond, ok := c.(map[string]interface{})
		if !ok || cond["type"] != conditionType {
			continue
		}
		switch cond["status"] {
		case "True":
			v := true
			return &v
		case "False":
			v := false
			return &v
		default:
			return nil
		}
	}
	return nil
}

// Summarize projects list items for display.
func Summarize(items []unstructured.Unstructured) []Summary {
	out := make([]Summary, 0, len(items))
	for i := range items {
		item := &items[i]
		s := Summary{
			Name:      item.GetName(),
			Namespace: item.GetNamespace(),
			Synced:    ConditionStatus(item, "Synced"),
			Ready:     ConditionStatus(item, "Ready"),
		}
		if ts := item.GetCreationTimestamp(); !ts.IsZero() {
			s.CreatedAt = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
		out = append(out, s)
	}
	return out
}

// StatusText renders a tri-state condition for tables.
func StatusText(v *bool) string {
	switch {
	case v == nil:
		return "Unknown"
	case *v:
		return "True"
	default:
		return "False"
	}
}
