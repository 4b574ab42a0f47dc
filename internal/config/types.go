package config

import "time"

// Tunnel implementations for reaching in-cluster observability services.
const (
	TunnelKubectl = "kubectl"
	TunnelNative  = "native"
)

// Config is the top-level configuration structure for shoulders.
type Config struct {
	LogLevel   string `mapstructure:"log_level"`
	Kubeconfig string `mapstructure:"kubeconfig"`
	Context    string `mapstructure:"context"`
	// RepoRoot locates the platform repository served as MCP resources.
	RepoRoot string `mapstructure:"repo_root"`

	Observability ObservabilityConfig `mapstructure:",squash"`
	Dashboard     DashboardConfig     `mapstructure:",squash"`
}

// ObservabilityConfig locates Loki and Tempo inside the cluster.
type ObservabilityConfig struct {
	Namespace       string `mapstructure:"observability_namespace"`
	LokiService     string `mapstructure:"loki_service"`
	TempoService    string `mapstructure:"tempo_service"`
	LokiRemotePort  int    `mapstructure:"loki_remote_port"`
	TempoRemotePort int    `mapstructure:"tempo_remote_port"`
	// PortForwardTimeoutMS bounds how long a tunnel may take to become ready.
	PortForwardTimeoutMS int    `mapstructure:"port_forward_timeout_ms"`
	Tunnel               string `mapstructure:"tunnel"`
	KubectlBin           string `mapstructure:"kubectl_bin"`
}

// PortForwardTimeout returns the tunnel startup timeout.
func (o ObservabilityConfig) PortForwardTimeout() time.Duration {
	return time.Duration(o.PortForwardTimeoutMS) * time.Millisecond
}

// DashboardConfig configures the HTTP backend.
type DashboardConfig struct {
	Port           int      `mapstructure:"dashboard_port"`
	Mock           bool     `mapstructure:"mock"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	StaticDir      string   `mapstructure:"static_dir"`
}
