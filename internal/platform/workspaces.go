package platform

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"shoulders/internal/resource"
	"shoulders/internal/validate"
	"shoulders/pkg/apis/shoulders/v1alpha1"
	"shoulders/pkg/logging"
)

// CreateWorkspace applies a cluster-scoped Workspace.
func (s *Service) CreateWorkspace(ctx context.Context, name string) (resource.ApplyOutcome, error) {
	ws, err := resource.NewWorkspace(name)
	if err != nil {
		return resource.ApplyOutcome{}, err
	}
	return s.apply(ctx, v1alpha1.WorkspaceKind, "", name, ws)
}

// ListWorkspaces lists every Workspace in the cluster.
func (s *Service) ListWorkspaces(ctx context.Context) ([]unstructured.Unstructured, error) {
	return s.list(ctx, v1alpha1.WorkspaceKind, "")
}

// UseWorkspace checks that the Workspace exists and saves it as the default
// namespace for later operations.
func (s *Service) UseWorkspace(ctx context.Context, name string) error {
	if err := validate.Name(name, "workspace name"); err != nil {
		return err
	}
	if s.workspaces == nil {
		return &Error{Kind: KindEnvironment, Message: "workspace preferences are not available"}
	}
	store, _, err := s.store()
	if err != nil {
		return err
	}
	ref := resource.RefFor(v1alpha1.WorkspaceKind, "", name)
	if _, err := store.Get(ctx, ref); err != nil {
		err = notFoundFor(err, ref, "workspace")
		if pe, ok := err.(*Error); ok && pe.Kind == KindNotFound {
			pe.Hint = HintWorkspace
		}
		return err
	}
	if err := s.workspaces.SetCurrent(name); err != nil {
		return fmt.Errorf("failed to save workspace preference: %w", err)
	}
	logging.Info("Platform", "Workspace %s selected", name)
	return nil
}

// CurrentWorkspace returns the saved workspace, or "" when none is selected.
func (s *Service) CurrentWorkspace() (string, error) {
	if s.workspaces == nil {
		return "", nil
	}
	return s.workspaces.Current()
}

// DeleteWorkspace deletes a Workspace.
func (s *Service) DeleteWorkspace(ctx context.Context, name string) error {
	if err := validate.Name(name, "workspace name"); err != nil {
		return err
	}
	return s.delete(ctx, resource.RefFor(v1alpha1.WorkspaceKind, "", name), "workspace")
}

// apply converts obj and runs Idempotent Apply against the cluster.
func (s *Service) apply(ctx context.Context, kind v1alpha1.Kind, namespace, name string, obj any) (resource.ApplyOutcome, error) {
	desired, err := resource.ToUnstructured(obj)
	if err != nil {
		return resource.ApplyOutcome{}, err
	}
	store, _, err := s.store()
	if err != nil {
		return resource.ApplyOutcome{}, err
	}
	ref := resource.RefFor(kind, namespace, name)
	outcome, err := resource.Apply(ctx, store, ref, desired)
	if err != nil {
		return resource.ApplyOutcome{}, fmt.Errorf("failed to apply %s %s: %w", kind.Name, ref, err)
	}
	logging.Info("Platform", "%s %s %s", kind.Name, ref, outcome.Action)
	return outcome, nil
}

func (s *Service) list(ctx context.Context, kind v1alpha1.Kind, namespace string) ([]unstructured.Unstructured, error) {
	store, _, err := s.store()
	if err != nil {
		return nil, err
	}
	list, err := store.List(ctx, listRef(kind, namespace))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind.Plural, err)
	}
	return list.Items, nil
}

func (s *Service) get(ctx context.Context, ref resource.Ref, label string) (*unstructured.Unstructured, error) {
	store, _, err := s.store()
	if err != nil {
		return nil, err
	}
	obj, err := store.Get(ctx, ref)
	if err != nil {
		return nil, notFoundFor(err, ref, label)
	}
	return obj, nil
}

func (s *Service) delete(ctx context.Context, ref resource.Ref, label string) error {
	store, _, err := s.store()
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, ref); err != nil {
		return notFoundFor(err, ref, label)
	}
	logging.Info("Platform", "Deleted %s", ref)
	return nil
}
