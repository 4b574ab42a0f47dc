package platform

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"shoulders/internal/resource"
	"shoulders/internal/validate"
	"shoulders/pkg/apis/shoulders/v1alpha1"
	"shoulders/pkg/logging"
)

// InfraList holds the infrastructure of one namespace.
type InfraList struct {
	Namespace    string                      `json:"namespace"`
	StateStores  []unstructured.Unstructured `json:"stateStores"`
	EventStreams []unstructured.Unstructured `json:"eventStreams"`
}

// Items returns state stores followed by event streams.
func (l InfraList) Items() []unstructured.Unstructured {
	items := make([]unstructured.Unstructured, 0, len(l.StateStores)+len(l.EventStreams))
	items = append(items, l.StateStores...)
	return append(items, l.EventStreams...)
}

// AddDatabase applies a StateStore.
func (s *Service) AddDatabase(ctx context.Context, opts resource.DatabaseOptions) (resource.ApplyOutcome, error) {
	ns, err := s.namespace(opts.Namespace)
	if err != nil {
		return resource.ApplyOutcome{}, err
	}
	opts.Namespace = ns
	store, err := resource.NewStateStore(opts)
	if err != nil {
		return resource.ApplyOutcome{}, err
	}
	return s.apply(ctx, v1alpha1.StateStoreKind, ns, opts.Name, store)
}

// AddStream applies an EventStream.
func (s *Service) AddStream(ctx context.Context, opts resource.StreamOptions) (resource.ApplyOutcome, error) {
	ns, err := s.namespace(opts.Namespace)
	if err != nil {
		return resource.ApplyOutcome{}, err
	}
	opts.Namespace = ns
	stream, err := resource.NewEventStream(opts)
	if err != nil {
		return resource.ApplyOutcome{}, err
	}
	return s.apply(ctx, v1alpha1.EventStreamKind, ns, opts.Name, stream)
}

// ListInfra lists StateStores and EventStreams concurrently. Either failure
// fails the whole call once both lists have finished.
func (s *Service) ListInfra(ctx context.Context, namespace string) (InfraList, error) {
	ns, err := s.namespace(namespace)
	if err != nil {
		return InfraList{}, err
	}
	out := InfraList{Namespace: ns}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.list(gctx, v1alpha1.StateStoreKind, ns)
		out.StateStores = items
		return err
	})
	g.Go(func() error {
		items, err := s.list(gctx, v1alpha1.EventStreamKind, ns)
		out.EventStreams = items
		return err
	})
	if err := g.Wait(); err != nil {
		return InfraList{}, err
	}
	return out, nil
}

// DeleteInfra deletes the StateStore and the EventStream called name. It
// succeeds when at least one existed and nothing failed.
func (s *Service) DeleteInfra(ctx context.Context, name, namespace string) (resource.Result, error) {
	if err := validate.Name(name, "name"); err != nil {
		return resource.Result{}, err
	}
	ns, err := s.namespace(namespace)
	if err != nil {
		return resource.Result{}, err
	}
	store, _, err := s.store()
	if err != nil {
		return resource.Result{}, err
	}

	var ops []resource.Operation
	for _, kind := range []v1alpha1.Kind{v1alpha1.StateStoreKind, v1alpha1.EventStreamKind} {
		ref := resource.RefFor(kind, ns, name)
		ops = append(ops, resource.Operation{
			Name: kind.Name + "/" + name,
			Run: func(ctx context.Context) error {
				return store.Delete(ctx, ref)
			},
		})
	}
	result := resource.Aggregate(ctx, ops...)
	logging.Debug("Platform", "Delete infra %s/%s: %d succeeded, %d not found, %d failed",
		ns, name, result.Succeeded, result.NotFound, len(result.Errors))

	switch result.Verdict() {
	case resource.VerdictNotFound:
		return result, NotFound("infrastructure resource %s not found in namespace %s", name, ns)
	case resource.VerdictFailed:
		return result, fmt.Errorf("errors deleting resources: %w", result.Err("delete infrastructure "+name))
	}
	return result, nil
}
