package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/version"
	fakediscovery "k8s.io/client-go/discovery/fake"
	clienttesting "k8s.io/client-go/testing"
)

func node(name string, ready corev1.ConditionStatus) *corev1.Node {
	return &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Status: corev1.NodeStatus{Conditions: []corev1.NodeCondition{
			{Type: corev1.NodeReady, Status: ready},
		}},
	}
}

func thirdParty(apiVersion, kind, namespace, name string, conditionType, status string) *unstructured.Unstructured {
	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": apiVersion,
		"kind":       kind,
		"metadata":   map[string]interface{}{"name": name},
	}}
	if namespace != "" {
		obj.SetNamespace(namespace)
	}
	if conditionType != "" {
		obj.Object["status"] = map[string]interface{}{
			"conditions": []interface{}{map[string]interface{}{"type": conditionType, "status": status}},
		}
	}
	return obj
}

func TestPlatformStatus_Healthy(t *testing.T) {
	gw := thirdParty("gateway.networking.k8s.io/v1", "Gateway", "gateway", "public", "", "")
	gw.Object["status"] = map[string]interface{}{
		"addresses": []interface{}{map[string]interface{}{"value": "172.18.0.3"}},
	}
	f := newFixture(t, fixtureOptions{
		objects: []runtime.Object{
			thirdParty("kustomize.toolkit.fluxcd.io/v1", "Kustomization", "flux-system", "apps", "Ready", "True"),
			thirdParty("pkg.crossplane.io/v1", "Provider", "", "provider-helm", "Healthy", "True"),
			gw,
		},
		coreObjs: []runtime.Object{node("cp", corev1.ConditionTrue), node("worker", corev1.ConditionTrue)},
	})
	f.core.Discovery().(*fakediscovery.FakeDiscovery).FakedServerVersion = &version.Info{GitVersion: "v1.31.0"}

	st, err := f.svc.PlatformStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.31.0", st.K8sVersion)
	assert.True(t, st.NodesReady)
	assert.Equal(t, 2, st.NodeCount)
	assert.True(t, st.FluxReady)
	assert.Empty(t, st.FluxBroken)
	assert.True(t, st.CrossplaneReady)
	assert.True(t, st.GatewayReady)
	assert.Equal(t, "172.18.0.3", st.GatewayAddress)
	assert.Equal(t, 3, st.Checks.Succeeded)
}

func TestPlatformStatus_ReportsBrokenComponents(t *testing.T) {
	f := newFixture(t, fixtureOptions{
		objects: []runtime.Object{
			thirdParty("kustomize.toolkit.fluxcd.io/v1", "Kustomization", "flux-system", "apps", "Ready", "False"),
			thirdParty("kustomize.toolkit.fluxcd.io/v1", "Kustomization", "flux-system", "infra", "Ready", "True"),
		},
		coreObjs: []runtime.Object{node("cp", corev1.ConditionTrue), node("worker", corev1.ConditionFalse)},
	})
	f.dyn.PrependReactor("list", "providers", func(clienttesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("crossplane is not installed")
	})

	st, err := f.svc.PlatformStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, st.NodesReady)
	assert.False(t, st.FluxReady)
	assert.Equal(t, []string{"apps"}, st.FluxBroken)
	assert.False(t, st.CrossplaneReady)
	assert.Equal(t, []string{"crossplane is not installed"}, st.CrossplaneBroken)
	assert.False(t, st.GatewayReady)
	assert.Equal(t, "Pending", st.GatewayAddress)
	require.Len(t, st.Checks.Errors, 1)
	assert.Equal(t, "crossplane", st.Checks.Errors[0].Item)
}

func TestPlatformStatus_NodeListFailureFails(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	f.core.PrependReactor("list", "nodes", func(clienttesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("unauthorized")
	})

	_, err := f.svc.PlatformStatus(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list nodes")
}
