package kube

import "k8s.io/apimachinery/pkg/runtime/schema"

// Third-party resources the platform reads but never writes.
var (
	KustomizationGVR = schema.GroupVersionResource{Group: "kustomize.toolkit.fluxcd.io", Version: "v1", Resource: "kustomizations"}
	ProviderGVR      = schema.GroupVersionResource{Group: "pkg.crossplane.io", Version: "v1", Resource: "providers"}
	GatewayGVR       = schema.GroupVersionResource{Group: "gateway.networking.k8s.io", Version: "v1", Resource: "gateways"}
)

// Namespaces holding the platform's Flux and Gateway objects.
const (
	FluxNamespace    = "flux-system"
	GatewayNamespace = "gateway"
)
