package resource

import (
	"errors"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/utils/ptr"

	"shoulders/internal/validate"
	"shoulders/pkg/apis/shoulders/v1alpha1"
)

// Form is the dashboard's create dialog state. Numeric inputs arrive as text.
type Form struct {
	Name        string          `json:"name"`
	Namespace   string          `json:"namespace"`
	WebApp      WebAppForm      `json:"webapp"`
	StateStore  StateStoreForm  `json:"stateStore"`
	EventStream EventStreamForm `json:"eventStream"`
}

type WebAppForm struct {
	Image    string `json:"image"`
	Tag      string `json:"tag"`
	Replicas string `json:"replicas"`
	Host     string `json:"host"`
}

type StateStoreForm struct {
	PostgresEnabled   bool   `json:"postgresEnabled"`
	PostgresStorage   string `json:"postgresStorage"`
	PostgresDatabases string `json:"postgresDatabases"`
	RedisEnabled      bool   `json:"redisEnabled"`
	RedisReplicas     string `json:"redisReplicas"`
}

type EventStreamForm struct {
	TopicsText string `json:"topicsText"`
}

// DefaultForm returns the initial dialog state, pre-filled with namespace.
func DefaultForm(namespace string) Form {
	return Form{
		Namespace: namespace,
		WebApp: WebAppForm{
			Image:    "nginx",
			Tag:      validate.DefaultTag,
			Replicas: "1",
		},
		StateStore: StateStoreForm{
			PostgresEnabled: true,
			PostgresStorage: DevStorage,
			RedisEnabled:    true,
			RedisReplicas:   "1",
		},
	}
}

func formError(message string) error {
	return &validate.Error{Field: "form", Message: message}
}

// parseInt32 parses a form number, failing with strconv.ErrRange when it does
// not fit the int32 fields of the custom resources.
func parseInt32(value string) (int32, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32)
	return int32(n), err
}

// ValidateForm returns the first problem with form for kind, or nil.
func ValidateForm(kind v1alpha1.Kind, form Form) error {
	if strings.TrimSpace(form.Name) == "" {
		return formError("Name is required.")
	}
	if kind.Namespaced && strings.TrimSpace(form.Namespace) == "" {
		return formError("Namespace is required for namespaced resources.")
	}
	switch kind {
	case v1alpha1.WebApplicationKind:
		w := form.WebApp
		if strings.TrimSpace(w.Image) == "" || strings.TrimSpace(w.Tag) == "" || strings.TrimSpace(w.Host) == "" {
			return formError("Image, tag, and host are required.")
		}
		if n, err := parseInt32(w.Replicas); err != nil || n < 1 {
			return formError("Replicas must be a positive number.")
		}
	case v1alpha1.StateStoreKind:
		if !form.StateStore.PostgresEnabled && !form.StateStore.RedisEnabled {
			return formError("Enable PostgreSQL or Redis (or both).")
		}
		if _, err := parseInt32(form.StateStore.RedisReplicas); errors.Is(err, strconv.ErrRange) {
			return formError("Redis replicas is out of range.")
		}
	}
	return nil
}

// FormManifest validates form and converts it into a manifest for kind.
func FormManifest(kind v1alpha1.Kind, form Form) (*unstructured.Unstructured, error) {
	if err := ValidateForm(kind, form); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(form.Name)
	namespace := strings.TrimSpace(form.Namespace)
	if err := validateTarget(kind, namespace, name); err != nil {
		return nil, err
	}

	var obj any
	switch kind {
	case v1alpha1.WorkspaceKind:
		obj = &v1alpha1.Workspace{
			TypeMeta:   typeMeta(kind),
			ObjectMeta: objectMeta(kind, namespace, name),
		}
	case v1alpha1.WebApplicationKind:
		replicas, _ := parseInt32(form.WebApp.Replicas)
		obj = &v1alpha1.WebApplication{
			TypeMeta:   typeMeta(kind),
			ObjectMeta: objectMeta(kind, namespace, name),
			Spec: v1alpha1.WebApplicationSpec{
				Image:    strings.TrimSpace(form.WebApp.Image),
				Tag:      strings.TrimSpace(form.WebApp.Tag),
				Replicas: replicas,
				Host:     strings.TrimSpace(form.WebApp.Host),
			},
		}
	case v1alpha1.StateStoreKind:
		ss := form.StateStore
		storage := strings.TrimSpace(ss.PostgresStorage)
		if storage == "" {
			storage = DevStorage
		}
		redisReplicas, err := parseInt32(ss.RedisReplicas)
		if err != nil {
			redisReplicas = DefaultRedisCopies
		}
		obj = &v1alpha1.StateStore{
			TypeMeta:   typeMeta(kind),
			ObjectMeta: objectMeta(kind, namespace, name),
			Spec: v1alpha1.StateStoreSpec{
				Postgresql: &v1alpha1.PostgresSpec{
					Enabled:   ptr.To(ss.PostgresEnabled),
					Storage:   storage,
					Databases: validate.List(ss.PostgresDatabases),
				},
				Redis: &v1alpha1.RedisSpec{
					Enabled:  ptr.To(ss.RedisEnabled),
					Replicas: ptr.To(redisReplicas),
				},
			},
		}
	default:
		stream := &v1alpha1.EventStream{
			TypeMeta:   typeMeta(kind),
			ObjectMeta: objectMeta(kind, namespace, name),
		}
		for _, topic := range validate.List(form.EventStream.TopicsText) {
			stream.Spec.Topics = append(stream.Spec.Topics, v1alpha1.EventTopic{Name: topic})
		}
		obj = stream
	}
	return ToUnstructured(obj)
}
