package resource

import (
	"context"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/dynamic"
)

// Store is the minimal set of custom-object calls the platform needs.
type Store interface {
	Get(ctx context.Context, ref Ref) (*unstructured.Unstructured, error)
	List(ctx context.Context, ref Ref) (*unstructured.UnstructuredList, error)
	Create(ctx context.Context, ref Ref, obj *unstructured.Unstructured) (*unstructured.Unstructured, error)
	Replace(ctx context.Context, ref Ref, obj *unstructured.Unstructured) (*unstructured.Unstructured, error)
	Delete(ctx context.Context, ref Ref) error
}

// DynamicStore implements Store on top of the client-go dynamic client.
type DynamicStore struct {
	client dynamic.Interface
}

// NewDynamicStore wraps a dynamic client.
func NewDynamicStore(client dynamic.Interface) *DynamicStore {
	return &DynamicStore{client: client}
}

func (s *DynamicStore) resource(ref Ref) dynamic.ResourceInterface {
	r := s.client.Resource(ref.GVR)
	if ref.Namespace == "" {
		return r
	}
	return r.Namespace(ref.Namespace)
}

func (s *DynamicStore) Get(ctx context.Context, ref Ref) (*unstructured.Unstructured, error) {
	return s.resource(ref).Get(ctx, ref.Name, metav1.GetOptions{})
}

func (s *DynamicStore) List(ctx context.Context, ref Ref) (*unstructured.UnstructuredList, error) {
	return s.resource(ref).List(ctx, metav1.ListOptions{})
}

func (s *DynamicStore) Create(ctx context.Context, ref Ref, obj *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	return s.resource(ref).Create(ctx, obj, metav1.CreateOptions{})
}

func (s *DynamicStore) Replace(ctx context.Context, ref Ref, obj *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	return s.resource(ref).Update(ctx, obj, metav1.UpdateOptions{})
}

func (s *DynamicStore) Delete(ctx context.Context, ref Ref) error {
	return s.resource(ref).Delete(ctx, ref.Name, metav1.DeleteOptions{})
}
