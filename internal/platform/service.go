package platform

import (
	"net/http"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/api/meta"

	"shoulders/internal/config"
	"shoulders/internal/kube"
	"shoulders/internal/observability"
	"shoulders/internal/resource"
	"shoulders/internal/validate"
	"shoulders/internal/workspace"
	"shoulders/pkg/apis/shoulders/v1alpha1"
)

// Options configures a Service.
type Options struct {
	Clients    kube.ClientProvider
	Kubeconfig *kube.Kubeconfig
	Workspaces *workspace.Storage

	// Forwarder opens tunnels to Loki and Tempo. Log queries fall back to
	// pod logs when it is nil or fails.
	Forwarder     observability.Forwarder
	Observability config.ObservabilityConfig
	HTTPClient    *http.Client

	// Mapper resolves manifest kinds. Discovery is used when nil.
	Mapper meta.RESTMapper

	Now func() time.Time
}

// Service runs platform operations against the selected cluster.
type Service struct {
	clients    kube.ClientProvider
	kubeconfig *kube.Kubeconfig
	workspaces *workspace.Storage
	forwarder  observability.Forwarder
	obs        config.ObservabilityConfig
	httpClient *http.Client
	mapper     meta.RESTMapper
	now        func() time.Time
}

// NewService creates a Service, filling unset options with defaults.
func NewService(opts Options) *Service {
	s := &Service{
		clients:    opts.Clients,
		kubeconfig: opts.Kubeconfig,
		workspaces: opts.Workspaces,
		forwarder:  opts.Forwarder,
		obs:        opts.Observability,
		httpClient: opts.HTTPClient,
		mapper:     opts.Mapper,
		now:        opts.Now,
	}
	if s.kubeconfig == nil {
		s.kubeconfig = kube.NewKubeconfig("")
	}
	if s.obs == (config.ObservabilityConfig{}) {
		s.obs = config.Default().Observability
	}
	if s.httpClient == nil {
		s.httpClient = observability.NewHTTPClient()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Kubeconfig returns the kubeconfig the service switches contexts in.
func (s *Service) Kubeconfig() *kube.Kubeconfig {
	return s.kubeconfig
}

// store returns a Store for the current cluster.
func (s *Service) store() (resource.Store, *kube.Clients, error) {
	if s.clients == nil {
		return nil, nil, &Error{Kind: KindEnvironment, Message: "no Kubernetes client configured", Hint: HintKubeconfig}
	}
	c, err := s.clients.Clients()
	if err != nil {
		return nil, nil, err
	}
	return resource.NewDynamicStore(c.Dynamic), c, nil
}

// namespace resolves the namespace for a namespaced operation.
func (s *Service) namespace(explicit string) (string, error) {
	if s.workspaces == nil {
		explicit = strings.TrimSpace(explicit)
		if explicit == "" {
			return "", errNoWorkspace
		}
		return explicit, validate.Name(explicit, "namespace")
	}
	ns, ok, err := s.workspaces.Resolve(explicit)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errNoWorkspace
	}
	if err := validate.Name(ns, "namespace"); err != nil {
		return "", err
	}
	return ns, nil
}

var errNoWorkspace = &Error{
	Kind:    KindInvalidInput,
	Message: "no active workspace: run 'shoulders workspace use <name>' or pass --namespace",
}

func listRef(kind v1alpha1.Kind, namespace string) resource.Ref {
	return resource.RefFor(kind, namespace, "")
}
