package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func withConditions(name string, conditions ...map[string]interface{}) unstructured.Unstructured {
	list := make([]interface{}, 0, len(conditions))
	for _, c := range conditions {
		list = append(list, c)
	}
	return unstructured.Unstructured{Object: map[string]interface{}{
		"metadata": map[string]interface{}{
			"name":              name,
			"namespace":         "team-a",
			"creationTimestamp": "2026-01-02T03:04:05Z",
		},
		"status": map[string]interface{}{"conditions": list},
	}}
}

func TestSummarize(t *testing.T) {
	items := []unstructured.Unstructured{
		withConditions("a",
			map[string]interface{}{"type": "Synced", "status": "True"},
			map[string]interface{}{"type": "Ready", "status": "False"},
		),
		withConditions("b", map[string]interface{}{"type": "Ready", "status": "Unknown"}),
		{Object: map[string]interface{}{"metadata": map[string]interface{}{"name": "c"}}},
	}

	got := Summarize(items)
	assert.Len(t, got, 3)

	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "2026-01-02T03:04:05Z", got[0].CreatedAt)
	assert.Equal(t, "True", StatusText(got[0].Synced))
	assert.Equal(t, "False", StatusText(got[0].Ready))

	assert.Nil(t, got[1].Synced)
	assert.Nil(t, got[1].Ready)

	assert.Nil(t, got[2].Ready)
	assert.Empty(t, got[2].CreatedAt)
	assert.Equal(t, "Unknown", StatusText(got[2].Ready))
}
