package platform

import (
	"errors"
	"fmt"

	"shoulders/internal/kube"
	"shoulders/internal/validate"
	"shoulders/pkg/logging"
)

// ClusterSelection is the result of UseCluster.
type ClusterSelection struct {
	Name    string `json:"name"`
	Context string `json:"context"`
}

// contextSetter is implemented by providers that can pin a context, such as
// kube.Loader started with --context.
type contextSetter interface {
	SetContext(name string)
}

// ListClusters returns the kind clusters found in the kubeconfig.
func (s *Service) ListClusters() ([]string, error) {
	clusters, err := s.kubeconfig.KindClusters()
	if err != nil {
		return nil, err
	}
	if clusters == nil {
		clusters = []string{}
	}
	return clusters, nil
}

// UseCluster switches the kubeconfig current-context to kind-<name>. A
// provider pinned to another context follows the switch.
func (s *Service) UseCluster(name string) (ClusterSelection, error) {
	if err := validate.Name(name, "cluster name"); err != nil {
		return ClusterSelection{}, err
	}
	ctxName := kube.KindContextPrefix + name
	if err := s.kubeconfig.UseContext(ctxName); err != nil {
		if errors.Is(err, kube.ErrContextNotFound) {
			return ClusterSelection{}, &Error{
				Kind:    KindInvalidInput,
				Message: fmt.Sprintf("context %s not found in kubeconfig", ctxName),
				Hint:    "run 'shoulders cluster list' to see available clusters",
				Err:     err,
			}
		}
		return ClusterSelection{}, err
	}
	if cs, ok := s.clients.(contextSetter); ok {
		cs.SetContext(ctxName)
	}
	logging.Info("Platform", "Switched to context %s", ctxName)
	return ClusterSelection{Name: name, Context: ctxName}, nil
}
