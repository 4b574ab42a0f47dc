package resource

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// recordingStore is an in-memory Store that records every call it receives.
type recordingStore struct {
	objects map[string]*unstructured.Unstructured
	calls   []string
	rv      int

	getErr     error
	createErr  error
	replaceErr error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{objects: map[string]*unstructured.Unstructured{}}
}

func (s *recordingStore) notFound(ref Ref) error {
	return apierrors.NewNotFound(ref.GVR.GroupResource(), ref.Name)
}

func (s *recordingStore) Get(_ context.Context, ref Ref) (*unstructured.Unstructured, error) {
	s.calls = append(s.calls, "get "+ref.String())
	if s.getErr != nil {
		return nil, s.getErr
	}
	obj, ok := s.objects[ref.String()]
	if !ok {
		return nil, s.notFound(ref)
	}
	return obj.DeepCopy(), nil
}

func (s *recordingStore) List(_ context.Context, ref Ref) (*unstructured.UnstructuredList, error) {
	s.calls = append(s.calls, "list "+ref.GVR.Resource)
	list := &unstructured.UnstructuredList{}
	for _, obj := range s.objects {
		list.Items = append(list.Items, *obj.DeepCopy())
	}
	return list, nil
}

func (s *recordingStore) Create(_ context.Context, ref Ref, obj *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	s.calls = append(s.calls, "create "+ref.String())
	if s.createErr != nil {
		return nil, s.createErr
	}
	if _, ok := s.objects[ref.String()]; ok {
		return nil, apierrors.NewAlreadyExists(ref.GVR.GroupResource(), ref.Name)
	}
	s.rv++
	stored := obj.DeepCopy()
	stored.SetResourceVersion(strconv.Itoa(s.rv))
	s.objects[ref.String()] = stored
	return stored.DeepCopy(), nil
}

func (s *recordingStore) Replace(_ context.Context, ref Ref, obj *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	s.calls = append(s.calls, "replace "+ref.String())
	if s.replaceErr != nil {
		return nil, s.replaceErr
	}
	current, ok := s.objects[ref.String()]
	if !ok {
		return nil, s.notFound(ref)
	}
	if current.GetResourceVersion() != obj.GetResourceVersion() {
		return nil, apierrors.NewConflict(ref.GVR.GroupResource(), ref.Name,
			fmt.Errorf("resourceVersion %s is stale", obj.GetResourceVersion()))
	}
	s.rv++
	stored := obj.DeepCopy()
	stored.SetResourceVersion(strconv.Itoa(s.rv))
	s.objects[ref.String()] = stored
	return stored.DeepCopy(), nil
}

func (s *recordingStore) Delete(_ context.Context, ref Ref) error {
	s.calls = append(s.calls, "delete "+ref.String())
	if _, ok := s.objects[ref.String()]; !ok {
		return s.notFound(ref)
	}
	delete(s.objects, ref.String())
	return nil
}

func (s *recordingStore) mutations() []string {
	var out []string
	for _, c := range s.calls {
		if strings.HasPrefix(c, "create") || strings.HasPrefix(c, "replace") || strings.HasPrefix(c, "delete") {
			out = append(out, c)
		}
	}
	return out
}
