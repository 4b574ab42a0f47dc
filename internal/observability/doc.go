// Package observability reaches the in-cluster Loki and Tempo services
// through a short-lived port-forward tunnel.
//
// A tunnel is scoped to a single query: WithTunnel allocates a free local
// port, waits for the forwarder to report readiness within a timeout, runs
// the query against http://127.0.0.1:<port> and always tears the tunnel down.
//
// Two forwarders are provided. KubectlForwarder shells out to
// "kubectl port-forward" and is the default. NativeForwarder speaks the
// port-forward subresource directly over SPDY using client-go.
package observability
