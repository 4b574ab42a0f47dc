package resource

import (
	"fmt"

	"k8s.io/apimachinery/pkg/runtime/schema"

	"shoulders/internal/validate"
	"shoulders/pkg/apis/shoulders/v1alpha1"
)

// Ref identifies one resource instance. An empty Namespace means the
// resource is cluster scoped. For List calls Name is ignored.
type Ref struct {
	GVR       schema.GroupVersionResource
	Namespace string
	Name      string
}

// RefFor builds a Ref for one of the platform kinds. The namespace is dropped
// for cluster-scoped kinds.
func RefFor(kind v1alpha1.Kind, namespace, name string) Ref {
	if !kind.Namespaced {
		namespace = ""
	}
	return Ref{GVR: kind.GVR(), Namespace: namespace, Name: name}
}

// Validate checks name and namespace as DNS-1123 labels.
func (r Ref) Validate() error {
	if err := validate.Name(r.Name, "name"); err != nil {
		return err
	}
	if r.Namespace != "" {
		if err := validate.Name(r.Namespace, "namespace"); err != nil {
			return err
		}
	}
	return nil
}

func (r Ref) String() string {
	if r.Namespace == "" {
		return fmt.Sprintf("%s/%s", r.GVR.Resource, r.Name)
	}
	return fmt.Sprintf("%s/%s/%s", r.GVR.Resource, r.Namespace, r.Name)
}
