// Package kube owns access to the kubeconfig file and construction of
// Kubernetes clients.
//
// Clients are built per call through a ClientProvider, so a context switch
// written to the kubeconfig (or selected in the dashboard) is picked up by
// the next operation without restarting the process.
package kube
