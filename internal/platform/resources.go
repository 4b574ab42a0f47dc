package platform

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"shoulders/pkg/apis/shoulders/v1alpha1"
)

// ListKind lists one platform kind. An empty namespace lists across all
// namespaces.
func (s *Service) ListKind(ctx context.Context, kind v1alpha1.Kind, namespace string) ([]unstructured.Unstructured, error) {
	return s.list(ctx, kind, namespace)
}

// ListNamespaces returns the names of every namespace.
func (s *Service) ListNamespaces(ctx context.Context) ([]string, error) {
	_, c, err := s.store()
	if err != nil {
		return nil, err
	}
	list, err := c.Core.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}
	names := make([]string, 0, len(list.Items))
	for _, ns := range list.Items {
		names = append(names, ns.Name)
	}
	return names, nil
}
