package v1alpha1

import (
	"fmt"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	Group   = "shoulders.io"
	Version = "v1alpha1"
)

// GroupVersion is the group version used to register these objects.
var GroupVersion = schema.GroupVersion{Group: Group, Version: Version}

// Kind describes one of the platform's custom resource types.
type Kind struct {
	Name       string
	Plural     string
	Namespaced bool
}

// GVR returns the group/version/resource of the kind.
func (k Kind) GVR() schema.GroupVersionResource {
	return GroupVersion.WithResource(k.Plural)
}

// GVK returns the group/version/kind of the kind.
func (k Kind) GVK() schema.GroupVersionKind {
	return GroupVersion.WithKind(k.Name)
}

var (
	WorkspaceKind      = Kind{Name: "Workspace", Plural: "workspaces", Namespaced: false}
	WebApplicationKind = Kind{Name: "WebApplication", Plural: "webapplications", Namespaced: true}
	StateStoreKind     = Kind{Name: "StateStore", Plural: "statestores", Namespaced: true}
	EventStreamKind    = Kind{Name: "EventStream", Plural: "eventstreams", Namespaced: true}
)

// Kinds lists every platform kind in display order.
var Kinds = []Kind{WorkspaceKind, WebApplicationKind, StateStoreKind, EventStreamKind}

var kindAliases = map[string]Kind{
	"workspace":       WorkspaceKind,
	"workspaces":      WorkspaceKind,
	"webapplication":  WebApplicationKind,
	"webapplications": WebApplicationKind,
	"webapp":          WebApplicationKind,
	"webapps":         WebApplicationKind,
	"app":             WebApplicationKind,
	"apps":            WebApplicationKind,
	"statestore":      StateStoreKind,
	"statestores":     StateStoreKind,
	"eventstream":     EventStreamKind,
	"eventstreams":    EventStreamKind,
}

// LookupKind resolves a kind name, plural or short alias (case-insensitive).
func LookupKind(alias string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(alias))]
	if !ok {
		return Kind{}, fmt.Errorf("unknown kind %q (expected one of %s)", alias, strings.Join(KindAliases(), ", "))
	}
	return k, nil
}

// KindAliases returns every accepted alias, sorted.
func KindAliases() []string {
	out := make([]string, 0, len(kindAliases))
	for a := range kindAliases {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// KindByName finds a platform kind by its exact Kind name.
func KindByName(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}
