package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"shoulders/pkg/logging"
)

const (
	userConfigDir  = ".shoulders"
	configFileName = "shoulders"
	envPrefix      = "SHOULDERS"
)

// Load resolves the configuration. configFile may be empty, in which case
// ~/.shoulders/shoulders.yaml is used when present.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("kubectl_bin", "KUBECTL_BIN", envPrefix+"_KUBECTL_BIN")
	_ = v.BindEnv("dashboard_port", envPrefix+"_DASHBOARD_PORT", "PORT")
	_ = v.BindEnv("port_forward_timeout_ms", envPrefix+"_PORT_FORWARD_TIMEOUT_MS", envPrefix+"_MCP_PORT_FORWARD_TIMEOUT_MS")
	_ = v.BindEnv("log_level", envPrefix+"_LOG_LEVEL", "LOG_LEVEL")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, userConfigDir))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		logging.Debug("Config", "No shoulders.yaml found, using defaults and environment")
	} else {
		logging.Debug("Config", "Loaded configuration from %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that would fail later in less obvious ways.
func (c *Config) Validate() error {
	switch c.Observability.Tunnel {
	case TunnelKubectl, TunnelNative:
	default:
		return fmt.Errorf("invalid tunnel %q (expected %s or %s)", c.Observability.Tunnel, TunnelKubectl, TunnelNative)
	}
	if c.Observability.PortForwardTimeoutMS <= 0 {
		return fmt.Errorf("port_forward_timeout_ms must be positive")
	}
	if c.Dashboard.Port <= 0 || c.Dashboard.Port > 65535 {
		return fmt.Errorf("dashboard_port %d is out of range", c.Dashboard.Port)
	}
	return nil
}
