package cmd

import (
	"fmt"
	"strconv"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"shoulders/internal/cli"
	"shoulders/internal/resource"
)

// printOutcome reports an Apply. Structured output gets the stored object.
func printOutcome(p *cli.Printer, label string, out resource.ApplyOutcome) error {
	if p.Structured() {
		return p.Print(out.Object.Object, nil)
	}
	p.Message(cli.FormatSuccess(fmt.Sprintf("%s %s %s", label, out.Object.GetName(), out.Action)))
	return nil
}

// printDeleted reports a successful delete.
func printDeleted(p *cli.Printer, label, name string) error {
	if p.Structured() {
		return p.Print(map[string]string{"name": name, "status": "deleted"}, nil)
	}
	p.Message(cli.FormatSuccess(fmt.Sprintf("%s %s deleted", label, name)))
	return nil
}

// printSummaries lists objects with their Synced and Ready conditions.
func printSummaries(p *cli.Printer, items []unstructured.Unstructured, emptyMessage string) error {
	summaries := resource.Summarize(items)
	if !p.Structured() && len(summaries) == 0 {
		p.Message(emptyMessage)
		return nil
	}
	return p.Print(summaries, func(t *cli.Table) {
		t.Header("Name", "Namespace", "Synced", "Ready", "Created")
		for _, s := range summaries {
			t.Row(s.Name, s.Namespace, resource.StatusText(s.Synced), resource.StatusText(s.Ready), s.CreatedAt)
		}
	})
}

func nestedString(obj *unstructured.Unstructured, fields ...string) string {
	v, _, _ := unstructured.NestedFieldNoCopy(obj.Object, fields...)
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
