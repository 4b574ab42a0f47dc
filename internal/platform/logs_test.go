package platform

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"shoulders/internal/observability"
)

func pod(namespace, name, app string) *corev1.Pod {
	return &corev1.Pod{ObjectMeta: metav1.ObjectMeta{
		Name:      name,
		Namespace: namespace,
		Labels:    map[string]string{"app": app},
	}}
}

func TestAppLogs_Loki(t *testing.T) {
	var seen []*http.Request
	fwd := &fakeForwarder{}
	f := newFixture(t, fixtureOptions{
		forwarder: fwd,
		transport: jsonResponder(`{"status":"success","data":{"result":[]}}`, &seen),
	})

	res, err := f.svc.AppLogs(context.Background(), LogsRequest{Name: "web", Limit: 5000, SinceSeconds: 10})
	require.NoError(t, err)
	assert.Equal(t, SourceLoki, res.Source)
	assert.Equal(t, "success", res.Loki.(map[string]any)["status"])

	require.Len(t, fwd.targets, 1)
	assert.Equal(t, observability.Target{Namespace: "observability", Service: "loki", RemotePort: 3100}, fwd.targets[0])
	assert.True(t, fwd.session.closed)

	require.Len(t, seen, 1)
	assert.Equal(t, observability.LokiQueryRangePath, seen[0].URL.Path)
	q := seen[0].URL.Query()
	assert.Equal(t, `{app="web"}`, q.Get("query"))
	assert.Equal(t, "2000", q.Get("limit"))
	assert.Equal(t, "BACKWARD", q.Get("direction"))
}

func TestAppLogs_FallsBackToPods(t *testing.T) {
	f := newFixture(t, fixtureOptions{
		forwarder: &fakeForwarder{err: &observability.TunnelError{Reason: "kubectl exited"}},
		coreObjs: []runtime.Object{
			pod("team-a", "web-1", "web"),
			pod("team-a", "web-2", "web"),
			pod("team-a", "api-1", "api"),
		},
	})

	res, err := f.svc.AppLogs(context.Background(), LogsRequest{Name: "web", Namespace: "team-a"})
	require.NoError(t, err)
	assert.Equal(t, SourceKubernetes, res.Source)
	assert.Contains(t, res.Output, "--- pod/web-1 ---\n")
	assert.Contains(t, res.Output, "--- pod/web-2 ---\n")
	assert.NotContains(t, res.Output, "api-1")
}

func TestAppLogs_FallbackWithoutPods(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	_, err := f.svc.AppLogs(context.Background(), LogsRequest{Name: "web", Namespace: "team-a"})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
	assert.Equal(t, "no pods found for selector app=web", err.Error())
}

func TestAppLogs_FallbackNeedsNamespace(t *testing.T) {
	f := newFixture(t, fixtureOptions{forwarder: &fakeForwarder{err: errors.New("down")}})

	_, err := f.svc.AppLogs(context.Background(), LogsRequest{Name: "web"})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "no active workspace"))
}

func TestAppLogs_InvalidName(t *testing.T) {
	fwd := &fakeForwarder{}
	f := newFixture(t, fixtureOptions{forwarder: fwd})

	_, err := f.svc.AppLogs(context.Background(), LogsRequest{Name: "Web"})
	assert.True(t, IsKind(err, KindInvalidInput))
	assert.Empty(t, fwd.targets)
}

func TestTrace(t *testing.T) {
	var seen []*http.Request
	fwd := &fakeForwarder{}
	f := newFixture(t, fixtureOptions{
		forwarder: fwd,
		transport: jsonResponder(`{"batches":[]}`, &seen),
	})

	_, err := f.svc.Trace(context.Background(), "  ")
	assert.True(t, IsKind(err, KindInvalidInput))

	data, err := f.svc.Trace(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Contains(t, data.(map[string]any), "batches")
	assert.Equal(t, "tempo", fwd.targets[0].Service)
	assert.Equal(t, "/api/traces/abc123", seen[0].URL.Path)
}

func TestTrace_TunnelFailureIsEnvironment(t *testing.T) {
	f := newFixture(t, fixtureOptions{forwarder: &fakeForwarder{err: &observability.TunnelError{Reason: "kubectl error", Err: errors.New("executable file not found")}}})

	_, err := f.svc.Trace(context.Background(), "abc123")
	require.Error(t, err)
	pe := Classify(err)
	assert.Equal(t, KindEnvironment, pe.Kind)
	assert.Equal(t, HintTunnel, pe.Hint)
}
