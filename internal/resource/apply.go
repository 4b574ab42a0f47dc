package resource

import (
	"context"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"shoulders/pkg/logging"
)

// Action tells whether Apply created a new object or replaced an existing one.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// ApplyOutcome is the result of a successful Apply.
type ApplyOutcome struct {
	Action Action
	Object *unstructured.Unstructured
}

// Apply makes ref exist with the desired content.
//
// It reads the current object first. When present, desired is sent as a full
// replacement carrying the server's resourceVersion; when absent it is
// created. Exactly one mutating call is made. Errors from the store are
// returned as they came, so callers can still inspect the API status; a
// conflict from a concurrent writer is not retried.
func Apply(ctx context.Context, store Store, ref Ref, desired *unstructured.Unstructured) (ApplyOutcome, error) {
	if err := ref.Validate(); err != nil {
		return ApplyOutcome{}, err
	}

	obj := desired.DeepCopy()
	obj.SetName(ref.Name)
	obj.SetNamespace(ref.Namespace)

	existing, err := store.Get(ctx, ref)
	switch {
	case err == nil:
		obj.SetResourceVersion(existing.GetResourceVersion())
		updated, err := store.Replace(ctx, ref, obj)
		if err != nil {
			return ApplyOutcome{}, err
		}
		logging.Debug("Apply", "Replaced %s at resourceVersion %s", ref, existing.GetResourceVersion())
		return ApplyOutcome{Action: ActionUpdated, Object: updated}, nil

	case apierrors.IsNotFound(err):
		obj.SetResourceVersion("")
		created, err := store.Create(ctx, ref, obj)
		if err != nil {
			return ApplyOutcome{}, err
		}
		logging.Debug("Apply", "Created %s", ref)
		return ApplyOutcome{Action: ActionCreated, Object: created}, nil

	default:
		return ApplyOutcome{}, err
	}
}
