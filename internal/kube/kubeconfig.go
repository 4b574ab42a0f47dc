package kube

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
)

// KindContextPrefix prefixes every context created by kind.
const KindContextPrefix = "kind-"

// ErrContextNotFound is returned when a context is missing from the kubeconfig.
var ErrContextNotFound = errors.New("context not found in kubeconfig")

// ConfigError reports a kubeconfig that could not be read or written.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("kubeconfig %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DefaultKubeconfigPath returns the first entry of $KUBECONFIG, or ~/.kube/config.
func DefaultKubeconfigPath() string {
	if env := strings.TrimSpace(os.Getenv(clientcmd.RecommendedConfigPathEnvVar)); env != "" {
		return filepath.SplitList(env)[0]
	}
	return clientcmd.RecommendedHomeFile
}

// Kubeconfig is a handle on one kubeconfig file.
type Kubeconfig struct {
	path string
}

// NewKubeconfig returns a handle for path, or the default location when path is empty.
func NewKubeconfig(path string) *Kubeconfig {
	if path == "" {
		path = DefaultKubeconfigPath()
	}
	return &Kubeconfig{path: path}
}

// Path returns the file backing this handle.
func (k *Kubeconfig) Path() string {
	return k.path
}

// Exists reports whether the kubeconfig file is present.
func (k *Kubeconfig) Exists() bool {
	_, err := os.Stat(k.path)
	return err == nil
}

// Load reads and parses the file.
func (k *Kubeconfig) Load() (*clientcmdapi.Config, error) {
	cfg, err := clientcmd.LoadFromFile(k.path)
	if err != nil {
		return nil, &ConfigError{Path: k.path, Err: err}
	}
	return cfg, nil
}

// Contexts returns the sorted context names and the current context.
func (k *Kubeconfig) Contexts() ([]string, string, error) {
	cfg, err := k.Load()
	if err != nil {
		return nil, "", err
	}
	names := make([]string, 0, len(cfg.Contexts))
	for name := range cfg.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, cfg.CurrentContext, nil
}

// HasContext reports whether name is defined.
func (k *Kubeconfig) HasContext(name string) (bool, error) {
	cfg, err := k.Load()
	if err != nil {
		return false, err
	}
	_, ok := cfg.Contexts[name]
	return ok, nil
}

// KindClusters lists kind clusters, i.e. contexts named "kind-<cluster>",
// with the prefix stripped and sorted.
func (k *Kubeconfig) KindClusters() ([]string, error) {
	names, _, err := k.Contexts()
	if err != nil {
		return nil, err
	}
	var clusters []string
	for _, name := range names {
		if strings.HasPrefix(name, KindContextPrefix) {
			clusters = append(clusters, strings.TrimPrefix(name, KindContextPrefix))
		}
	}
	return clusters, nil
}

// UseContext rewrites current-context. The context must already exist.
func (k *Kubeconfig) UseContext(name string) error {
	cfg, err := k.Load()
	if err != nil {
		return err
	}
	if _, ok := cfg.Contexts[name]; !ok {
		return fmt.Errorf("context %s: %w", name, ErrContextNotFound)
	}
	cfg.CurrentContext = name
	if err := clientcmd.WriteToFile(*cfg, k.path); err != nil {
		return &ConfigError{Path: k.path, Err: err}
	}
	return nil
}

// ContextInfo describes the cluster behind a context.
type ContextInfo struct {
	Context string `json:"context"`
	Cluster string `json:"cluster"`
	Server  string `json:"server"`
}

// Describe resolves name (or the current context when empty).
func (k *Kubeconfig) Describe(name string) (ContextInfo, error) {
	cfg, err := k.Load()
	if err != nil {
		return ContextInfo{}, err
	}
	if name == "" {
		name = cfg.CurrentContext
	}
	info := ContextInfo{Context: name}
	kctx, ok := cfg.Contexts[name]
	if !ok {
		return info, fmt.Errorf("context %s: %w", name, ErrContextNotFound)
	}
	info.Cluster = kctx.Cluster
	if cluster, ok := cfg.Clusters[kctx.Cluster]; ok {
		info.Server = cluster.Server
	}
	return info, nil
}
