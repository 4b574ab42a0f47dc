package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"shoulders/internal/cli"
	"shoulders/internal/platform"
)

var applyFlags struct {
	file      string
	namespace string
	dryRun    bool
}

var applyCmd = &cobra.Command{
	Use:   "apply -f <file>",
	Short: "Apply multi-document YAML manifests",
	Long: `Creates or replaces every document in the file. Each document is attempted
even when earlier ones fail; failures are listed at the end. Namespaced
documents without a namespace go to --namespace, or "default".`,
	Example: `  shoulders apply -f platform.yaml -n team-a
  cat app.yaml | shoulders apply -f -`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readManifest(cmd, applyFlags.file)
		if err != nil {
			return err
		}
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		report, err := env.svc.ApplyManifests(cmd.Context(), text, applyFlags.namespace, applyFlags.dryRun)
		if err != nil {
			return err
		}
		if err := p.Print(report, func(t *cli.Table) {
			t.Header("Kind", "Name", "Namespace", "Action")
			for _, a := range report.Applied {
				action := string(a.Action)
				if applyFlags.dryRun {
					action = "dry-run"
				}
				t.Row(a.Kind, a.Name, a.Namespace, action)
			}
		}); err != nil {
			return err
		}
		if len(report.Errors) == 0 {
			return nil
		}
		if !p.Structured() {
			for _, e := range report.Errors {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(e))
			}
		}
		return &platform.Error{
			Kind:    platform.KindExternal,
			Message: fmt.Sprintf("%d of %d documents failed", len(report.Errors), len(report.Errors)+len(report.Applied)),
		}
	},
}

func readManifest(cmd *cobra.Command, file string) (string, error) {
	if file == "" {
		return "", platform.InvalidInput("a manifest file is required (-f <file> or -f -)")
	}
	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", platform.InvalidInput("failed to read %s: %v", file, err)
	}
	return string(data), nil
}

func init() {
	f := applyCmd.Flags()
	f.StringVarP(&applyFlags.file, "filename", "f", "", "Manifest file, or - for stdin")
	f.StringVarP(&applyFlags.namespace, "namespace", "n", "", "Namespace for documents that name none")
	f.BoolVar(&applyFlags.dryRun, "dry-run", false, "Check and map documents without applying them")
	rootCmd.AddCommand(applyCmd)
}
