package kube

import (
	"fmt"
	"sync"

	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	ctrl "sigs.k8s.io/controller-runtime"

	"shoulders/pkg/logging"
)

// Clients bundles the clients an operation needs.
type Clients struct {
	Dynamic dynamic.Interface
	Core    kubernetes.Interface
	// REST is nil for fake clients.
	REST *rest.Config
	// Context is the kubeconfig context the clients were built for.
	Context string
}

// ClientProvider hands out clients for the currently selected cluster.
type ClientProvider interface {
	Clients() (*Clients, error)
}

// Loader builds clients from a kubeconfig on every call. An optional
// context override takes precedence over the file's current-context.
type Loader struct {
	kubeconfig *Kubeconfig

	mu       sync.RWMutex
	override string
}

// NewLoader creates a Loader for kubeconfig with an optional context override.
func NewLoader(kubeconfig *Kubeconfig, context string) *Loader {
	return &Loader{kubeconfig: kubeconfig, override: context}
}

// Kubeconfig returns the file the loader reads.
func (l *Loader) Kubeconfig() *Kubeconfig {
	return l.kubeconfig
}

// SetContext selects a context for subsequent Clients calls. An empty name
// reverts to the file's current-context.
func (l *Loader) SetContext(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.override = name
}

// Context returns the effective context name.
func (l *Loader) Context() string {
	l.mu.RLock()
	override := l.override
	l.mu.RUnlock()
	if override != "" {
		return override
	}
	if !l.kubeconfig.Exists() {
		return ""
	}
	_, current, err := l.kubeconfig.Contexts()
	if err != nil {
		return ""
	}
	return current
}

// RESTConfig resolves the REST configuration. Without a kubeconfig file it
// falls back to controller-runtime's detection (in-cluster config).
func (l *Loader) RESTConfig() (*rest.Config, error) {
	if !l.kubeconfig.Exists() {
		logging.Debug("Kube", "Kubeconfig %s not found, trying in-cluster configuration", l.kubeconfig.Path())
		cfg, err := ctrl.GetConfig()
		if err != nil {
			return nil, &ConfigError{Path: l.kubeconfig.Path(), Err: err}
		}
		return cfg, nil
	}

	l.mu.RLock()
	override := l.override
	l.mu.RUnlock()

	cfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		&clientcmd.ClientConfigLoadingRules{ExplicitPath: l.kubeconfig.Path()},
		&clientcmd.ConfigOverrides{CurrentContext: override},
	).ClientConfig()
	if err != nil {
		return nil, &ConfigError{Path: l.kubeconfig.Path(), Err: err}
	}
	return cfg, nil
}

// Clients implements ClientProvider.
func (l *Loader) Clients() (*Clients, error) {
	cfg, err := l.RESTConfig()
	if err != nil {
		return nil, err
	}
	return NewClients(cfg, l.Context())
}

// NewClients creates typed and dynamic clients for cfg.
func NewClients(cfg *rest.Config, context string) (*Clients, error) {
	core, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}
	dyn, err := dynamic.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}
	return &Clients{Dynamic: dyn, Core: core, REST: cfg, Context: context}, nil
}

// StaticProvider always returns the same clients.
type StaticProvider struct {
	C   *Clients
	Err error
}

func (p StaticProvider) Clients() (*Clients, error) {
	return p.C, p.Err
}
