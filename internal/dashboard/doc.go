// Package dashboard is the HTTP backend of the shoulders web dashboard.
//
// It proxies a small JSON API over the platform operations: kubeconfig
// contexts, namespaces, a per-kind summary of the platform resources,
// multi-document YAML apply and dashboard form rendering. With mock mode on
// it serves canned data so the UI can be developed without a cluster.
package dashboard
