package platform

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	"k8s.io/client-go/kubernetes/fake"

	"shoulders/internal/config"
	"shoulders/internal/kube"
	"shoulders/internal/kube/kubefake"
	"shoulders/internal/observability"
	"shoulders/internal/resource"
	"shoulders/internal/workspace"
)

type fixture struct {
	svc   *Service
	dyn   *dynamicfake.FakeDynamicClient
	core  *fake.Clientset
	prefs *workspace.Storage
	kc    *kube.Kubeconfig
}

type fixtureOptions struct {
	objects   []runtime.Object
	coreObjs  []runtime.Object
	forwarder observability.Forwarder
	transport http.RoundTripper
}

func newFixture(t *testing.T, opts fixtureOptions) *fixture {
	t.Helper()
	f := &fixture{
		dyn:   kubefake.NewDynamicClient(opts.objects...),
		core:  fake.NewSimpleClientset(opts.coreObjs...),
		prefs: workspace.NewStorageWithPath(filepath.Join(t.TempDir(), ".shoulders")),
		kc:    kubefake.WriteKubeconfig(t, "kind-dev", "kind-dev", "kind-staging", "prod"),
	}
	var httpClient *http.Client
	if opts.transport != nil {
		httpClient = &http.Client{Transport: opts.transport}
	}
	f.svc = NewService(Options{
		Clients:       kubefake.Provider(kubefake.NewClients(f.dyn, f.core)),
		Kubeconfig:    f.kc,
		Workspaces:    f.prefs,
		Forwarder:     opts.forwarder,
		Observability: config.Default().Observability,
		HTTPClient:    httpClient,
		Now:           func() time.Time { return time.Unix(1700000000, 0) },
	})
	return f
}

// verbs returns "verb resource" for every dynamic client action.
func (f *fixture) verbs() []string {
	var out []string
	for _, a := range f.dyn.Actions() {
		out = append(out, a.GetVerb()+" "+a.GetResource().Resource)
	}
	return out
}

func mustUnstructured(t *testing.T, obj any) *unstructured.Unstructured {
	t.Helper()
	u, err := resource.ToUnstructured(obj)
	require.NoError(t, err)
	return u
}

func workspaceObj(t *testing.T, name string) *unstructured.Unstructured {
	t.Helper()
	ws, err := resource.NewWorkspace(name)
	require.NoError(t, err)
	return mustUnstructured(t, ws)
}

type fakeSession struct{ closed bool }

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

type fakeForwarder struct {
	err     error
	targets []observability.Target
	session *fakeSession
}

func (f *fakeForwarder) Forward(_ context.Context, target observability.Target, _ int) (observability.Session, error) {
	f.targets = append(f.targets, target)
	if f.err != nil {
		return nil, f.err
	}
	f.session = &fakeSession{}
	return f.session, nil
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (fn roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return fn(r)
}

func jsonResponder(body string, seen *[]*http.Request) roundTripFunc {
	return func(r *http.Request) (*http.Response, error) {
		*seen = append(*seen, r)
		return &http.Response{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    r,
		}, nil
	}
}
