package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shoulders/internal/cli"
	"shoulders/internal/config"
	"shoulders/internal/platform"
	"shoulders/pkg/logging"
)

var (
	rootFlags  cli.CommandFlags
	rootConfig *config.Config
)

// rootCmd represents the base command for the shoulders application.
var rootCmd = &cobra.Command{
	Use:   "shoulders",
	Short: "Operate the shoulders developer platform",
	Long: `shoulders manages workspaces, web applications and their infrastructure
(state stores and event streams) on a Kubernetes cluster running the shoulders
platform. The same operations are available to AI assistants through
'shoulders mcp' and to the browser through 'shoulders dashboard'.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	// Errors are printed by Execute together with their hint.
	SilenceErrors:     true,
	PersistentPreRunE: initRoot,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// It executes the root command and exits with a code derived from the error kind.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "shoulders version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(cli.ExitCode(err))
	}
}

// initRoot loads the configuration and sets up CLI logging. Interactive
// commands log warnings and errors only unless --debug is given.
func initRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(rootFlags.ConfigFile)
	if err != nil {
		return &platform.Error{Kind: platform.KindEnvironment, Message: err.Error(), Err: err}
	}
	rootConfig = cfg
	logging.InitForCLI(cliLogLevel(), cmd.ErrOrStderr())
	return cli.ValidateOutputFormat(rootFlags.OutputFormat)
}

func cliLogLevel() logging.LogLevel {
	if rootFlags.Debug {
		return logging.LevelDebug
	}
	return logging.LevelWarn
}

// serverLogLevel is used by the long-running mcp and dashboard commands.
func serverLogLevel() logging.LogLevel {
	if rootFlags.Debug {
		return logging.LevelDebug
	}
	return logging.ParseLevel(rootConfig.LogLevel)
}

func init() {
	cli.RegisterCommonFlags(rootCmd, &rootFlags)
	rootCmd.AddCommand(newVersionCmd())
}
