package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shoulders/internal/cli"
	"shoulders/internal/kube"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "List and switch local kind clusters",
}

var clusterListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List kind clusters found in the kubeconfig",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		clusters, err := env.svc.ListClusters()
		if err != nil {
			return err
		}
		if !p.Structured() && len(clusters) == 0 {
			p.Message("No kind clusters found in %s", env.svc.Kubeconfig().Path())
			return nil
		}
		current := strings.TrimPrefix(env.loader.Context(), kube.KindContextPrefix)
		return p.Print(clusters, func(t *cli.Table) {
			t.Header("Current", "Name", "Context")
			for _, c := range clusters {
				marker := " "
				if c == current {
					marker = "*"
				}
				t.Row(marker, c, kube.KindContextPrefix+c)
			}
		})
	},
}

var clusterUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Switch the kubeconfig current-context to kind-<name>",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		sel, err := env.svc.UseCluster(args[0])
		if err != nil {
			return err
		}
		if p.Structured() {
			return p.Print(sel, nil)
		}
		p.Message(cli.FormatSuccess(fmt.Sprintf("Switched to context %s", sel.Context)))
		return nil
	},
}

func init() {
	clusterCmd.AddCommand(clusterListCmd, clusterUseCmd)
	rootCmd.AddCommand(clusterCmd)
}
