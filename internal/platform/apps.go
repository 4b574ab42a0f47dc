package platform

import (
	"context"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"shoulders/internal/resource"
	"shoulders/internal/validate"
	"shoulders/pkg/apis/shoulders/v1alpha1"
)

// DeployApp applies a WebApplication. An empty namespace resolves to the
// selected workspace.
func (s *Service) DeployApp(ctx context.Context, opts resource.AppOptions) (resource.ApplyOutcome, error) {
	ns, err := s.namespace(opts.Namespace)
	if err != nil {
		return resource.ApplyOutcome{}, err
	}
	opts.Namespace = ns
	app, err := resource.NewWebApplication(opts)
	if err != nil {
		return resource.ApplyOutcome{}, err
	}
	return s.apply(ctx, v1alpha1.WebApplicationKind, ns, opts.Name, app)
}

// RenderApp builds the WebApplication DeployApp would apply without
// contacting the cluster.
func (s *Service) RenderApp(opts resource.AppOptions) (*unstructured.Unstructured, error) {
	ns, err := s.namespace(opts.Namespace)
	if err != nil {
		return nil, err
	}
	opts.Namespace = ns
	app, err := resource.NewWebApplication(opts)
	if err != nil {
		return nil, err
	}
	return resource.ToUnstructured(app)
}

// ListApps lists the WebApplications of a namespace and returns the
// namespace that was used.
func (s *Service) ListApps(ctx context.Context, namespace string) ([]unstructured.Unstructured, string, error) {
	ns, err := s.namespace(namespace)
	if err != nil {
		return nil, "", err
	}
	items, err := s.list(ctx, v1alpha1.WebApplicationKind, ns)
	return items, ns, err
}

// GetApp fetches one WebApplication.
func (s *Service) GetApp(ctx context.Context, name, namespace string) (*unstructured.Unstructured, error) {
	if err := validate.Name(name, "app name"); err != nil {
		return nil, err
	}
	ns, err := s.namespace(namespace)
	if err != nil {
		return nil, err
	}
	return s.get(ctx, resource.RefFor(v1alpha1.WebApplicationKind, ns, name), "application")
}

// DeleteApp deletes one WebApplication.
func (s *Service) DeleteApp(ctx context.Context, name, namespace string) error {
	if err := validate.Name(name, "app name"); err != nil {
		return err
	}
	ns, err := s.namespace(namespace)
	if err != nil {
		return err
	}
	return s.delete(ctx, resource.RefFor(v1alpha1.WebApplicationKind, ns, name), "application")
}
