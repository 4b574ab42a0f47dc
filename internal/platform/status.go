package platform

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"shoulders/internal/kube"
	"shoulders/internal/resource"
	"shoulders/pkg/logging"
)

// PlatformStatus summarises cluster and add-on health.
type PlatformStatus struct {
	K8sVersion       string   `json:"k8sVersion"`
	NodesReady       bool     `json:"nodesReady"`
	NodeCount        int      `json:"nodeCount"`
	FluxReady        bool     `json:"fluxReady"`
	FluxBroken       []string `json:"fluxBroken"`
	CrossplaneReady  bool     `json:"crossplaneReady"`
	CrossplaneBroken []string `json:"crossplaneBroken"`
	GatewayReady     bool     `json:"gatewayReady"`
	GatewayAddress   string   `json:"gatewayAddress"`

	// Checks records how the add-on checks went.
	Checks resource.Result `json:"checks"`
}

// PlatformStatus reads the server version, node readiness and the Flux,
// Crossplane and Gateway add-ons. Only a failed node list fails the call;
// add-on failures are reported in the result.
func (s *Service) PlatformStatus(ctx context.Context) (*PlatformStatus, error) {
	_, c, err := s.store()
	if err != nil {
		return nil, err
	}
	st := &PlatformStatus{
		K8sVersion:       "unknown",
		FluxBroken:       []string{},
		CrossplaneBroken: []string{},
		GatewayAddress:   "Pending",
	}

	if info, err := c.Core.Discovery().ServerVersion(); err != nil {
		logging.Debug("Platform", "Server version unavailable: %v", err)
	} else if info.GitVersion != "" {
		st.K8sVersion = info.GitVersion
	}

	nodes, err := c.Core.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	st.NodeCount = len(nodes.Items)
	st.NodesReady = true
	for i := range nodes.Items {
		if !nodeReady(&nodes.Items[i]) {
			st.NodesReady = false
		}
	}

	list := func(ctx context.Context, gvr schema.GroupVersionResource, namespace string) ([]unstructured.Unstructured, error) {
		l, err := c.Dynamic.Resource(gvr).Namespace(namespace).List(ctx, metav1.ListOptions{})
		if err != nil {
			return nil, err
		}
		return l.Items, nil
	}

	st.Checks = resource.Aggregate(ctx,
		resource.Operation{Name: "flux", Run: func(ctx context.Context) error {
			items, err := list(ctx, kube.KustomizationGVR, kube.FluxNamespace)
			if err != nil {
				st.FluxBroken = []string{err.Error()}
				return err
			}
			st.FluxBroken = notMatching(items, "Ready")
			st.FluxReady = len(st.FluxBroken) == 0
			return nil
		}},
		resource.Operation{Name: "crossplane", Run: func(ctx context.Context) error {
			items, err := list(ctx, kube.ProviderGVR, "")
			if err != nil {
				st.CrossplaneBroken = []string{err.Error()}
				return err
			}
			st.CrossplaneBroken = notMatching(items, "Healthy")
			st.CrossplaneReady = len(st.CrossplaneBroken) == 0
			return nil
		}},
		resource.Operation{Name: "gateway", Run: func(ctx context.Context) error {
			items, err := list(ctx, kube.GatewayGVR, kube.GatewayNamespace)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return nil
			}
			st.GatewayReady = true
			addrs, _, _ := unstructured.NestedSlice(items[0].Object, "status", "addresses")
			if len(addrs) > 0 {
				if addr, ok := addrs[0].(map[string]interface{}); ok {
					if v, ok := addr["value"].(string); ok && v != "" {
						st.GatewayAddress = v
					}
				}
			}
			return nil
		}},
	)
	return st, nil
}

func nodeReady(node *corev1.Node) bool {
	for _, c := range node.Status.Conditions {
		if c.Type == corev1.NodeReady {
			return c.Status == corev1.ConditionTrue
		}
	}
	return false
}

// notMatching returns the names of items whose condition is not True.
func notMatching(items []unstructured.Unstructured, conditionType string) []string {
	broken := []string{}
	for i := range items {
		if v := resource.ConditionStatus(&items[i], conditionType); v == nil || !*v {
			name := items[i].GetName()
			if name == "" {
				name = "unknown"
			}
			broken = append(broken, name)
		}
	}
	return broken
}
