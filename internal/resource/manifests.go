package resource

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/utils/ptr"

	"shoulders/internal/validate"
	"shoulders/pkg/apis/shoulders/v1alpha1"
)

const (
	DefaultReplicas    = 1
	DefaultPort        = 80
	DevStorage         = "1Gi"
	ProdStorage        = "10Gi"
	DefaultDatabase    = "postgres"
	DefaultTier        = "dev"
	DefaultRedisCopies = 1
)

func typeMeta(kind v1alpha1.Kind) metav1.TypeMeta {
	return metav1.TypeMeta{APIVersion: v1alpha1.GroupVersion.String(), Kind: kind.Name}
}

func objectMeta(kind v1alpha1.Kind, namespace, name string) metav1.ObjectMeta {
	meta := metav1.ObjectMeta{Name: name}
	if kind.Namespaced {
		meta.Namespace = namespace
	}
	return meta
}

func validateTarget(kind v1alpha1.Kind, namespace, name string) error {
	if err := validate.Name(name, "name"); err != nil {
		return err
	}
	if kind.Namespaced {
		return validate.Name(namespace, "namespace")
	}
	return nil
}

// NewWorkspace builds a Workspace with an empty spec.
func NewWorkspace(name string) (*v1alpha1.Workspace, error) {
	if err := validateTarget(v1alpha1.WorkspaceKind, "", name); err != nil {
		return nil, err
	}
	return &v1alpha1.Workspace{
		TypeMeta:   typeMeta(v1alpha1.WorkspaceKind),
		ObjectMeta: objectMeta(v1alpha1.WorkspaceKind, "", name),
	}, nil
}

// AppOptions describes a WebApplication deployment request.
type AppOptions struct {
	Name      string
	Namespace string
	Image     string
	Tag       string
	// Replicas and Port are nil when not given. An explicit zero is kept:
	// zero replicas scales the app down, port zero omits the annotation.
	Replicas *int
	Host     string
	Port     *int
}

// NewWebApplication validates opts and applies defaults: one replica, host
// "<name>.local" and port 80. A positive port is recorded as an annotation.
func NewWebApplication(opts AppOptions) (*v1alpha1.WebApplication, error) {
	if err := validateTarget(v1alpha1.WebApplicationKind, opts.Namespace, opts.Name); err != nil {
		return nil, err
	}
	img, err := validate.Image(opts.Image, opts.Tag)
	if err != nil {
		return nil, err
	}
	replicas := DefaultReplicas
	if opts.Replicas != nil {
		replicas = *opts.Replicas
	}
	if replicas < 0 {
		return nil, &validate.Error{Field: "replicas", Message: "replicas must not be negative"}
	}
	if replicas > math.MaxInt32 {
		return nil, &validate.Error{Field: "replicas", Message: fmt.Sprintf("replicas must be at most %d", math.MaxInt32)}
	}
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = opts.Name + ".local"
	}
	port := DefaultPort
	if opts.Port != nil {
		port = *opts.Port
	}

	app := &v1alpha1.WebApplication{
		TypeMeta:   typeMeta(v1alpha1.WebApplicationKind),
		ObjectMeta: objectMeta(v1alpha1.WebApplicationKind, opts.Namespace, opts.Name),
		Spec: v1alpha1.WebApplicationSpec{
			Image:    img.Image,
			Tag:      img.Tag,
			Replicas: int32(replicas),
			Host:     host,
		},
	}
	if port > 0 {
		app.Annotations = map[string]string{v1alpha1.PortAnnotation: strconv.Itoa(port)}
	}
	return app, nil
}

// DatabaseOptions describes a StateStore request.
type DatabaseOptions struct {
	Name      string
	Namespace string
	// Type is postgres, postgresql or redis. Defaults to postgres.
	Type string
	// Tier is dev or prod and selects the storage size. Defaults to dev.
	Tier string
}

// NewStateStore builds a StateStore with exactly one engine enabled. Both
// engine blocks are always present so a later Apply switches engines cleanly.
func NewStateStore(opts DatabaseOptions) (*v1alpha1.StateStore, error) {
	if err := validateTarget(v1alpha1.StateStoreKind, opts.Namespace, opts.Name); err != nil {
		return nil, err
	}
	dbType := opts.Type
	if strings.TrimSpace(dbType) == "" {
		dbType = DefaultDatabase
	}
	dbType, err := validate.OneOf(dbType, "database type", "postgres", "postgresql", "redis")
	if err != nil {
		return nil, err
	}
	tier := opts.Tier
	if strings.TrimSpace(tier) == "" {
		tier = DefaultTier
	}
	tier, err = validate.OneOf(tier, "tier", "dev", "prod")
	if err != nil {
		return nil, err
	}

	storage := DevStorage
	if tier == "prod" {
		storage = ProdStorage
	}
	store := &v1alpha1.StateStore{
		TypeMeta:   typeMeta(v1alpha1.StateStoreKind),
		ObjectMeta: objectMeta(v1alpha1.StateStoreKind, opts.Namespace, opts.Name),
		Spec: v1alpha1.StateStoreSpec{
			Postgresql: &v1alpha1.PostgresSpec{
				Enabled:   ptr.To(dbType != "redis"),
				Storage:   storage,
				Databases: []string{opts.Name},
			},
			Redis: &v1alpha1.RedisSpec{
				Enabled:  ptr.To(dbType == "redis"),
				Replicas: ptr.To(int32(DefaultRedisCopies)),
			},
		},
	}
	return store, nil
}

// StreamOptions describes an EventStream request. Partitions, Replicas and
// Config apply to every topic when set.
type StreamOptions struct {
	Name       string
	Namespace  string
	Topics     []string
	Partitions *int32
	Replicas   *int32
	Config     map[string]string
}

// NewEventStream builds an EventStream; at least one topic is required after
// normalisation.
func NewEventStream(opts StreamOptions) (*v1alpha1.EventStream, error) {
	if err := validateTarget(v1alpha1.EventStreamKind, opts.Namespace, opts.Name); err != nil {
		return nil, err
	}
	topics := validate.Items(opts.Topics)
	if len(topics) == 0 {
		return nil, &validate.Error{Field: "topics", Message: "at least one topic is required"}
	}
	if err := positive("partitions", opts.Partitions); err != nil {
		return nil, err
	}
	if err := positive("replicas", opts.Replicas); err != nil {
		return nil, err
	}

	stream := &v1alpha1.EventStream{
		TypeMeta:   typeMeta(v1alpha1.EventStreamKind),
		ObjectMeta: objectMeta(v1alpha1.EventStreamKind, opts.Namespace, opts.Name),
	}
	for _, name := range topics {
		topic := v1alpha1.EventTopic{Name: name, Partitions: opts.Partitions, Replicas: opts.Replicas}
		if len(opts.Config) > 0 {
			topic.Config = opts.Config
		}
		stream.Spec.Topics = append(stream.Spec.Topics, topic)
	}
	return stream, nil
}

func positive(field string, v *int32) error {
	if v != nil && *v < 1 {
		return &validate.Error{Field: field, Message: fmt.Sprintf("%s must be a positive number", field)}
	}
	return nil
}

// ToUnstructured converts a typed platform object into the unstructured form
// sent to the API server.
func ToUnstructured(obj any) (*unstructured.Unstructured, error) {
	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %T: %w", obj, err)
	}
	u := &unstructured.Unstructured{Object: content}
	unstructured.RemoveNestedField(u.Object, "metadata", "creationTimestamp")
	return u, nil
}
