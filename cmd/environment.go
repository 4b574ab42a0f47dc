package cmd

import (
	"github.com/spf13/cobra"

	"shoulders/internal/cli"
	"shoulders/internal/config"
	"shoulders/internal/kube"
	"shoulders/internal/observability"
	"shoulders/internal/platform"
	"shoulders/internal/workspace"
)

// environment is everything a command needs to talk to the cluster.
type environment struct {
	loader *kube.Loader
	svc    *platform.Service
}

// newEnvironment builds the environment for a command. Tests replace it.
var newEnvironment = buildEnvironment

func buildEnvironment(cfg *config.Config, flags *cli.CommandFlags) (*environment, error) {
	kubeconfigPath := firstNonEmpty(flags.Kubeconfig, cfg.Kubeconfig)
	contextName := firstNonEmpty(flags.Context, cfg.Context)

	kc := kube.NewKubeconfig(kubeconfigPath)
	loader := kube.NewLoader(kc, contextName)
	prefs, err := workspace.NewStorage()
	if err != nil {
		return nil, &platform.Error{Kind: platform.KindEnvironment, Message: err.Error(), Err: err}
	}

	svc := platform.NewService(platform.Options{
		Clients:       loader,
		Kubeconfig:    kc,
		Workspaces:    prefs,
		Forwarder:     newForwarder(cfg.Observability, loader, kubeconfigPath, contextName),
		Observability: cfg.Observability,
	})
	return &environment{loader: loader, svc: svc}, nil
}

// newForwarder picks the tunnel implementation named in the configuration.
func newForwarder(obs config.ObservabilityConfig, provider kube.ClientProvider, kubeconfig, context string) observability.Forwarder {
	if obs.Tunnel == config.TunnelNative {
		return &observability.NativeForwarder{Provider: provider}
	}
	return &observability.KubectlForwarder{Bin: obs.KubectlBin, Kubeconfig: kubeconfig, Context: context}
}

// commandEnv returns the environment and printer for a running command.
func commandEnv(cmd *cobra.Command) (*environment, *cli.Printer, error) {
	p, err := rootFlags.Printer(cmd)
	if err != nil {
		return nil, nil, err
	}
	cfg := rootConfig
	if cfg == nil {
		cfg = config.Default()
	}
	e, err := newEnvironment(cfg, &rootFlags)
	if err != nil {
		return nil, nil, err
	}
	return e, p, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
