package config

import "github.com/spf13/viper"

const (
	DefaultObservabilityNamespace = "observability"
	DefaultLokiService            = "loki"
	DefaultTempoService           = "tempo"
	DefaultLokiPort               = 3100
	DefaultTempoPort              = 3100
	DefaultPortForwardTimeoutMS   = 15000
	DefaultKubectlBin             = "kubectl"
	DefaultDashboardPort          = 8787
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("kubeconfig", "")
	v.SetDefault("context", "")
	v.SetDefault("repo_root", "")

	v.SetDefault("observability_namespace", DefaultObservabilityNamespace)
	v.SetDefault("loki_service", DefaultLokiService)
	v.SetDefault("tempo_service", DefaultTempoService)
	v.SetDefault("loki_remote_port", DefaultLokiPort)
	v.SetDefault("tempo_remote_port", DefaultTempoPort)
	v.SetDefault("port_forward_timeout_ms", DefaultPortForwardTimeoutMS)
	v.SetDefault("tunnel", TunnelKubectl)
	v.SetDefault("kubectl_bin", DefaultKubectlBin)

	v.SetDefault("dashboard_port", DefaultDashboardPort)
	v.SetDefault("mock", false)
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("static_dir", "")
}

// Default returns the configuration used when no file or environment is set.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}
