package platform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
	"k8s.io/client-go/rest"
	"sigs.k8s.io/controller-runtime/pkg/client/apiutil"

	"shoulders/internal/kube"
	"shoulders/internal/resource"
	"shoulders/pkg/apis/shoulders/v1alpha1"
	"shoulders/pkg/logging"
)

// DefaultManifestNamespace is used for namespaced documents that name no
// namespace when the request does not either.
const DefaultManifestNamespace = "default"

const missingFieldsMessage = "Manifest is missing apiVersion, kind, or metadata.name."

// AppliedObject identifies one applied document.
type AppliedObject struct {
	Kind      string          `json:"kind"`
	Name      string          `json:"name"`
	Namespace string          `json:"namespace"`
	Action    resource.Action `json:"action,omitempty"`
}

// ApplyReport lists what an ApplyManifests call did. Errors are
// "<Kind>/<name>: <message>" strings, one per failed document.
type ApplyReport struct {
	Applied []AppliedObject `json:"applied"`
	Errors  []string        `json:"errors"`
}

// ParseManifests splits multi-document YAML (or JSON) into objects. Empty
// documents are skipped.
func ParseManifests(text string) ([]*unstructured.Unstructured, error) {
	dec := utilyaml.NewYAMLOrJSONDecoder(strings.NewReader(text), 4096)
	var objs []*unstructured.Unstructured
	for {
		var doc map[string]interface{}
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, InvalidInput("YAML parse failed: %v", err)
		}
		if len(doc) == 0 {
			continue
		}
		objs = append(objs, &unstructured.Unstructured{Object: doc})
	}
	return objs, nil
}

// ApplyManifests applies every document in text with Idempotent Apply.
// Namespaced documents without a namespace get namespace, or "default".
// Each document is attempted even when earlier ones fail. With dryRun the
// documents are checked and mapped but nothing is sent to the cluster.
func (s *Service) ApplyManifests(ctx context.Context, text, namespace string, dryRun bool) (*ApplyReport, error) {
	if strings.TrimSpace(text) == "" {
		return nil, InvalidInput("Missing yaml payload.")
	}
	objs, err := ParseManifests(text)
	if err != nil {
		return nil, err
	}
	if namespace == "" {
		namespace = DefaultManifestNamespace
	}

	var store resource.Store
	var mapper meta.RESTMapper
	if dryRun {
		mapper = StaticRESTMapper()
	} else {
		var c *kube.Clients
		store, c, err = s.store()
		if err != nil {
			return nil, err
		}
		mapper, err = s.restMapper(c)
		if err != nil {
			return nil, err
		}
	}

	report := &ApplyReport{Applied: []AppliedObject{}, Errors: []string{}}
	var ops []resource.Operation
	for _, obj := range objs {
		if obj.GetAPIVersion() == "" || obj.GetKind() == "" || obj.GetName() == "" {
			report.Errors = append(report.Errors, missingFieldsMessage)
			continue
		}
		ops = append(ops, resource.Operation{
			Name: obj.GetKind() + "/" + obj.GetName(),
			Run: func(ctx context.Context) error {
				ref, err := manifestRef(mapper, obj, namespace)
				if err != nil {
					return err
				}
				applied := AppliedObject{Kind: obj.GetKind(), Name: ref.Name, Namespace: ref.Namespace}
				if !dryRun {
					outcome, err := resource.Apply(ctx, store, ref, obj)
					if err != nil {
						return err
					}
					applied.Action = outcome.Action
				}
				report.Applied = append(report.Applied, applied)
				return nil
			},
		})
	}

	result := resource.Aggregate(ctx, ops...)
	for _, e := range result.Errors {
		report.Errors = append(report.Errors, e.Item+": "+e.Message)
	}
	logging.Info("Platform", "Applied %d of %d documents (%d errors)", len(report.Applied), len(objs), len(report.Errors))
	return report, nil
}

// manifestRef maps obj to a Ref, defaulting the namespace of namespaced kinds.
func manifestRef(mapper meta.RESTMapper, obj *unstructured.Unstructured, namespace string) (resource.Ref, error) {
	gvk := obj.GroupVersionKind()
	mapping, err := mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err != nil {
		return resource.Ref{}, fmt.Errorf("unknown resource type %s: %w", gvk, err)
	}
	ref := resource.Ref{GVR: mapping.Resource, Name: obj.GetName()}
	if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
		ref.Namespace = obj.GetNamespace()
		if ref.Namespace == "" {
			ref.Namespace = namespace
		}
	}
	return ref, nil
}

func (s *Service) restMapper(c *kube.Clients) (meta.RESTMapper, error) {
	if s.mapper != nil {
		return s.mapper, nil
	}
	if c.REST == nil {
		return StaticRESTMapper(), nil
	}
	httpClient, err := rest.HTTPClientFor(c.REST)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery client: %w", err)
	}
	mapper, err := apiutil.NewDynamicRESTMapper(c.REST, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST mapper: %w", err)
	}
	return mapper, nil
}

// StaticRESTMapper knows the platform kinds and the core kinds most often
// applied next to them.
func StaticRESTMapper() meta.RESTMapper {
	core := schema.GroupVersion{Version: "v1"}
	m := meta.NewDefaultRESTMapper([]schema.GroupVersion{v1alpha1.GroupVersion, core})
	for _, k := range v1alpha1.Kinds {
		scope := meta.RESTScopeRoot
		if k.Namespaced {
			scope = meta.RESTScopeNamespace
		}
		m.Add(k.GVK(), scope)
	}
	m.Add(core.WithKind("Namespace"), meta.RESTScopeRoot)
	m.Add(core.WithKind("ConfigMap"), meta.RESTScopeNamespace)
	m.Add(core.WithKind("Secret"), meta.RESTScopeNamespace)
	m.Add(core.WithKind("Service"), meta.RESTScopeNamespace)
	return m
}
