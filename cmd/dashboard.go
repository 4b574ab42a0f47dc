package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phayes/freeport"
	"github.com/spf13/cobra"

	"shoulders/internal/dashboard"
	"shoulders/pkg/logging"
)

var dashboardFlags struct {
	port      int
	mock      bool
	staticDir string
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Run the dashboard HTTP backend",
	Long: `Serves the dashboard API (contexts, namespaces, summary, resource lists,
manifest apply and form rendering) plus /healthz and /metrics. With --mock
canned data is returned and nothing is sent to a cluster. --port 0 picks a
free port.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.InitForCLI(serverLogLevel(), cmd.ErrOrStderr())

		opts := rootConfig.Dashboard
		if cmd.Flags().Changed("port") {
			opts.Port = dashboardFlags.port
		}
		if cmd.Flags().Changed("mock") {
			opts.Mock = dashboardFlags.mock
		}
		if cmd.Flags().Changed("static-dir") {
			opts.StaticDir = dashboardFlags.staticDir
		}
		if opts.Port == 0 {
			port, err := freeport.GetFreePort()
			if err != nil {
				return fmt.Errorf("failed to find a free port: %w", err)
			}
			opts.Port = port
		}

		env, err := newEnvironment(rootConfig, &rootFlags)
		if err != nil {
			return err
		}
		srv := dashboard.New(dashboard.Options{
			Service:        env.svc,
			Contexts:       env.loader,
			Mock:           opts.Mock,
			AllowedOrigins: opts.AllowedOrigins,
			StaticDir:      opts.StaticDir,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx, opts.Port)
	},
}

func init() {
	f := dashboardCmd.Flags()
	f.IntVar(&dashboardFlags.port, "port", 0, "Listen port (default from config, 8787)")
	f.BoolVar(&dashboardFlags.mock, "mock", false, "Serve canned data without a cluster (env: SHOULDERS_MOCK)")
	f.StringVar(&dashboardFlags.staticDir, "static-dir", "", "Directory with the built dashboard UI")
	rootCmd.AddCommand(dashboardCmd)
}
