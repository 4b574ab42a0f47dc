package resource

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/utils/ptr"

	"shoulders/internal/validate"
	"shoulders/pkg/apis/shoulders/v1alpha1"
)

func TestNewWorkspace(t *testing.T) {
	ws, err := NewWorkspace("team-a")
	require.NoError(t, err)

	u, err := ToUnstructured(ws)
	require.NoError(t, err)
	assert.Equal(t, "shoulders.io/v1alpha1", u.GetAPIVersion())
	assert.Equal(t, "Workspace", u.GetKind())
	assert.Equal(t, "team-a", u.GetName())
	assert.Empty(t, u.GetNamespace())
	_, found, _ := unstructured.NestedFieldNoCopy(u.Object, "metadata", "creationTimestamp")
	assert.False(t, found)

	_, err = NewWorkspace("Team-A")
	assert.True(t, validate.IsInvalid(err))
}

func TestNewWebApplication_Defaults(t *testing.T) {
	app, err := NewWebApplication(AppOptions{Name: "web", Namespace: "team-a", Image: "nginx"})
	require.NoError(t, err)

	assert.Equal(t, v1alpha1.WebApplicationSpec{Image: "nginx", Tag: "latest", Replicas: 1, Host: "web.local"}, app.Spec)
	assert.Equal(t, map[string]string{v1alpha1.PortAnnotation: "80"}, app.Annotations)
	assert.Equal(t, "team-a", app.Namespace)
}

func TestNewWebApplication_Explicit(t *testing.T) {
	app, err := NewWebApplication(AppOptions{
		Name: "web", Namespace: "team-a", Image: "ghcr.io/acme/web:1.0", Tag: "2.0",
		Replicas: ptr.To(3), Host: "shop.example.com", Port: ptr.To(8080),
	})
	require.NoError(t, err)

	assert.Equal(t, "ghcr.io/acme/web", app.Spec.Image)
	assert.Equal(t, "2.0", app.Spec.Tag)
	assert.Equal(t, int32(3), app.Spec.Replicas)
	assert.Equal(t, "shop.example.com", app.Spec.Host)
	assert.Equal(t, "8080", app.Annotations[v1alpha1.PortAnnotation])
}

func TestNewWebApplication_NegativePortSkipsAnnotation(t *testing.T) {
	app, err := NewWebApplication(AppOptions{Name: "web", Namespace: "team-a", Image: "nginx", Port: ptr.To(-1)})
	require.NoError(t, err)
	assert.Nil(t, app.Annotations)
}

func TestNewWebApplication_ExplicitZeroKept(t *testing.T) {
	app, err := NewWebApplication(AppOptions{
		Name: "web", Namespace: "team-a", Image: "nginx",
		Replicas: ptr.To(0), Port: ptr.To(0),
	})
	require.NoError(t, err)
	assert.Equal(t, int32(0), app.Spec.Replicas)
	assert.Nil(t, app.Annotations)

	u, err := ToUnstructured(app)
	require.NoError(t, err)
	replicas, found, err := unstructured.NestedInt64(u.Object, "spec", "replicas")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(0), replicas)
}

func TestNewWebApplication_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts AppOptions
		msg  string
	}{
		{"missing namespace", AppOptions{Name: "web", Image: "nginx"}, "namespace is required"},
		{"bad name", AppOptions{Name: "Web", Namespace: "team-a", Image: "nginx"}, "DNS-1123"},
		{"missing image", AppOptions{Name: "web", Namespace: "team-a", Image: " "}, "image is required"},
		{"negative replicas", AppOptions{Name: "web", Namespace: "team-a", Image: "nginx", Replicas: ptr.To(-2)}, "replicas must not be negative"},
		{"replicas overflow", AppOptions{Name: "web", Namespace: "team-a", Image: "nginx", Replicas: ptr.To(math.MaxInt32 + 1)}, "replicas must be at most 2147483647"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWebApplication(tt.opts)
			require.Error(t, err)
			assert.True(t, validate.IsInvalid(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestNewStateStore(t *testing.T) {
	dev, err := NewStateStore(DatabaseOptions{Name: "orders", Namespace: "team-a"})
	require.NoError(t, err)
	require.NotNil(t, dev.Spec.Postgresql)
	require.NotNil(t, dev.Spec.Redis)
	assert.Equal(t, ptr.To(true), dev.Spec.Postgresql.Enabled)
	assert.Equal(t, ptr.To(false), dev.Spec.Redis.Enabled)
	assert.Equal(t, "1Gi", dev.Spec.Postgresql.Storage)
	assert.Equal(t, []string{"orders"}, dev.Spec.Postgresql.Databases)

	prod, err := NewStateStore(DatabaseOptions{Name: "orders", Namespace: "team-a", Type: "postgresql", Tier: "PROD"})
	require.NoError(t, err)
	assert.Equal(t, "10Gi", prod.Spec.Postgresql.Storage)

	cache, err := NewStateStore(DatabaseOptions{Name: "cache", Namespace: "team-a", Type: "redis"})
	require.NoError(t, err)
	assert.Equal(t, ptr.To(false), cache.Spec.Postgresql.Enabled)
	assert.Equal(t, ptr.To(true), cache.Spec.Redis.Enabled)
	assert.Equal(t, ptr.To(int32(1)), cache.Spec.Redis.Replicas)

	_, err = NewStateStore(DatabaseOptions{Name: "orders", Namespace: "team-a", Type: "mysql"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")

	_, err = NewStateStore(DatabaseOptions{Name: "orders", Namespace: "team-a", Tier: "staging"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported tier")
}

func TestNewEventStream(t *testing.T) {
	stream, err := NewEventStream(StreamOptions{
		Name: "events", Namespace: "team-a",
		Topics:     []string{"orders, payments", " ", "orders"},
		Partitions: ptr.To(int32(3)),
		Config:     map[string]string{"retention.ms": "1000"},
	})
	require.NoError(t, err)
	require.Len(t, stream.Spec.Topics, 2)
	assert.Equal(t, "orders", stream.Spec.Topics[0].Name)
	assert.Equal(t, "payments", stream.Spec.Topics[1].Name)
	assert.Equal(t, ptr.To(int32(3)), stream.Spec.Topics[1].Partitions)
	assert.Nil(t, stream.Spec.Topics[1].Replicas)
	assert.Equal(t, "1000", stream.Spec.Topics[0].Config["retention.ms"])

	u, err := ToUnstructured(stream)
	require.NoError(t, err)
	topics, _, _ := unstructured.NestedSlice(u.Object, "spec", "topics")
	assert.Len(t, topics, 2)
}

func TestNewEventStream_Invalid(t *testing.T) {
	_, err := NewEventStream(StreamOptions{Name: "events", Namespace: "team-a", Topics: []string{" , "}})
	require.Error(t, err)
	assert.Equal(t, "at least one topic is required", err.Error())

	_, err = NewEventStream(StreamOptions{Name: "events", Namespace: "team-a", Topics: []string{"a"}, Replicas: ptr.To(int32(0))})
	require.Error(t, err)
	assert.Equal(t, "replicas must be a positive number", err.Error())
}
