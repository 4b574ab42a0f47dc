// Package kubefake builds in-memory clients for tests.
package kubefake

import (
	"path/filepath"
	"testing"

	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"

	"shoulders/internal/kube"
	"shoulders/pkg/apis/shoulders/v1alpha1"
)

// ListKinds maps every resource the platform lists to its list kind.
func ListKinds() map[schema.GroupVersionResource]string {
	kinds := map[schema.GroupVersionResource]string{
		kube.KustomizationGVR: "KustomizationList",
		kube.ProviderGVR:      "ProviderList",
		kube.GatewayGVR:       "GatewayList",
	}
	for _, k := range v1alpha1.Kinds {
		kinds[k.GVR()] = k.Name + "List"
	}
	return kinds
}

// NewDynamicClient returns a fake dynamic client seeded with objects.
// Objects should be *unstructured.Unstructured.
func NewDynamicClient(objects ...runtime.Object) *dynamicfake.FakeDynamicClient {
	return dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(), ListKinds(), objects...)
}

// NewClients bundles fake dynamic and typed clients.
func NewClients(dyn *dynamicfake.FakeDynamicClient, core *fake.Clientset) *kube.Clients {
	if dyn == nil {
		dyn = NewDynamicClient()
	}
	if core == nil {
		core = fake.NewSimpleClientset()
	}
	return &kube.Clients{Dynamic: dyn, Core: core, Context: "kind-test"}
}

// Provider returns a ClientProvider serving c.
func Provider(c *kube.Clients) kube.ClientProvider {
	return kube.StaticProvider{C: c}
}

// WriteKubeconfig writes a kubeconfig with one cluster per context into a
// temporary directory and returns a handle on it.
func WriteKubeconfig(t testing.TB, current string, contexts ...string) *kube.Kubeconfig {
	t.Helper()
	cfg := clientcmdapi.NewConfig()
	for _, name := range contexts {
		cfg.Clusters[name] = &clientcmdapi.Cluster{Server: "https://" + name + ".example:6443"}
		cfg.AuthInfos[name] = &clientcmdapi.AuthInfo{Token: "token"}
		cfg.Contexts[name] = &clientcmdapi.Context{Cluster: name, AuthInfo: name}
	}
	cfg.CurrentContext = current

	path := filepath.Join(t.TempDir(), "config")
	if err := clientcmd.WriteToFile(*cfg, path); err != nil {
		t.Fatalf("write kubeconfig: %v", err)
	}
	return kube.NewKubeconfig(path)
}
