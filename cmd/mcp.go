package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"shoulders/internal/config"
	"shoulders/internal/mcpserver"
	"shoulders/pkg/logging"
)

var mcpRepoRoot string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP tool server on stdio",
	Long: `Serves the shoulders tools (workspaces, applications, infrastructure,
status, logs and traces) to an AI assistant over the MCP stdio transport.
Platform schemas and examples from the repository root are exposed as
resources. Logs go to stderr; stdout carries the protocol.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.InitForMCP(serverLogLevel())

		env, err := newEnvironment(rootConfig, &rootFlags)
		if err != nil {
			return err
		}
		wd, err := os.Getwd()
		if err != nil {
			wd = "."
		}
		repoRoot := config.ResolveRepoRoot(firstNonEmpty(mcpRepoRoot, rootConfig.RepoRoot), wd)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logging.Info("MCP", "Serving %s %s on stdio (repo root %s)", mcpserver.ServerName, mcpserver.ServerVersion, repoRoot)
		return mcpserver.NewMCPServer(env.svc, repoRoot).Start(ctx)
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpRepoRoot, "repo-root", "", "Platform repository served as MCP resources (env: SHOULDERS_REPO_ROOT)")
	rootCmd.AddCommand(mcpCmd)
}
