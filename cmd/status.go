package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shoulders/internal/cli"
	"shoulders/internal/platform"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cluster and platform add-on health",
	Long: `Reports the Kubernetes version, node readiness and the health of the
Flux, Crossplane and Gateway add-ons the platform depends on.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		var st *platform.PlatformStatus
		err = cli.WithSpinner(cmd.ErrOrStderr(), rootFlags.Quiet || p.Structured(), "Checking platform...", func() error {
			var err error
			st, err = env.svc.PlatformStatus(cmd.Context())
			return err
		})
		if err != nil {
			return err
		}
		return p.Print(st, func(t *cli.Table) {
			t.Header("Component", "Status", "Detail")
			t.Row("Kubernetes", "", st.K8sVersion)
			t.Row("Nodes", health(st.NodesReady), fmt.Sprintf("%d node(s)", st.NodeCount))
			t.Row("Flux", health(st.FluxReady), strings.Join(st.FluxBroken, ", "))
			t.Row("Crossplane", health(st.CrossplaneReady), strings.Join(st.CrossplaneBroken, ", "))
			t.Row("Gateway", health(st.GatewayReady), st.GatewayAddress)
			for _, e := range st.Checks.Errors {
				t.Row(e.Item, "Error", e.Message)
			}
		})
	},
}

func health(ready bool) string {
	if ready {
		return "Ready"
	}
	return "NotReady"
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
