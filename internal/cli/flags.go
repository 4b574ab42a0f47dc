package cli

import (
	"github.com/spf13/cobra"
)

// CommandFlags holds the global flag values shared by every command.
type CommandFlags struct {
	// OutputFormat specifies the desired output format (table, json, yaml)
	OutputFormat string
	// NoHeaders suppresses the header row in table output
	NoHeaders bool
	// Quiet suppresses progress indicators and non-essential output
	Quiet bool
	// Debug enables verbose logging
	Debug bool
	// ConfigFile overrides ~/.shoulders/shoulders.yaml
	ConfigFile string
	// Kubeconfig overrides $KUBECONFIG and ~/.kube/config
	Kubeconfig string
	// Context selects a kubeconfig context for this invocation only
	Context string
}

// RegisterCommonFlags registers the global flags as persistent flags on cmd.
//
// The registered flags are:
//   - --output/-o: Output format (table, json, yaml), default: "table"
//   - --no-headers: Suppress header row in table output
//   - --quiet/-q: Suppress non-essential output
//   - --debug: Enable debug logging
//   - --config: Configuration file
//   - --kubeconfig: Kubeconfig file (env: KUBECONFIG)
//   - --context: Kubeconfig context
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.OutputFormat, "output", "o", string(OutputFormatTable), "Output format (table, json, yaml)")
	pf.BoolVar(&flags.NoHeaders, "no-headers", false, "Suppress header row in table output")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress progress indicators and non-essential output")
	pf.BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	pf.StringVar(&flags.ConfigFile, "config", "", "Configuration file (default ~/.shoulders/shoulders.yaml)")
	pf.StringVar(&flags.Kubeconfig, "kubeconfig", "", "Path to the kubeconfig file (env: KUBECONFIG)")
	pf.StringVar(&flags.Context, "context", "", "Kubeconfig context to use instead of the current one")
}

// Printer builds a Printer for the output flags.
func (f *CommandFlags) Printer(cmd *cobra.Command) (*Printer, error) {
	if err := ValidateOutputFormat(f.OutputFormat); err != nil {
		return nil, err
	}
	return NewPrinter(cmd.OutOrStdout(), OutputFormat(f.OutputFormat), f.NoHeaders), nil
}
