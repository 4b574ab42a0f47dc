package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/utils/ptr"

	"shoulders/internal/cli"
	"shoulders/internal/resource"
	"shoulders/internal/validate"
)

var infraNamespace string

var infraDBFlags struct {
	dbType string
	tier   string
}

var infraStreamFlags struct {
	topics     []string
	partitions int32
	replicas   int32
	config     []string
}

var infraCmd = &cobra.Command{
	Use:   "infra",
	Short: "Manage state stores and event streams",
	Long: `Infrastructure resources back web applications: StateStores provide
PostgreSQL and Redis, EventStreams provide Kafka topics. Without --namespace
the selected workspace is used.`,
}

var infraAddDBCmd = &cobra.Command{
	Use:   "add-db <name>",
	Short: "Add a StateStore (PostgreSQL or Redis)",
	Example: `  shoulders infra add-db orders
  shoulders infra add-db cache --type redis
  shoulders infra add-db orders --tier prod`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		out, err := env.svc.AddDatabase(cmd.Context(), resource.DatabaseOptions{
			Name:      args[0],
			Namespace: infraNamespace,
			Type:      infraDBFlags.dbType,
			Tier:      infraDBFlags.tier,
		})
		if err != nil {
			return err
		}
		return printOutcome(p, "StateStore", out)
	},
}

var infraAddStreamCmd = &cobra.Command{
	Use:     "add-stream <name>",
	Short:   "Add an EventStream with one or more topics",
	Example: `  shoulders infra add-stream events --topics orders,payments --partitions 6 --config retention.ms=604800000`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		config, err := validate.KeyValues(infraStreamFlags.config)
		if err != nil {
			return err
		}
		opts := resource.StreamOptions{
			Name:      args[0],
			Namespace: infraNamespace,
			Topics:    infraStreamFlags.topics,
			Config:    config,
		}
		if cmd.Flags().Changed("partitions") {
			opts.Partitions = ptr.To(infraStreamFlags.partitions)
		}
		if cmd.Flags().Changed("replicas") {
			opts.Replicas = ptr.To(infraStreamFlags.replicas)
		}
		out, err := env.svc.AddStream(cmd.Context(), opts)
		if err != nil {
			return err
		}
		return printOutcome(p, "EventStream", out)
	},
}

var infraListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List state stores and event streams",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		list, err := env.svc.ListInfra(cmd.Context(), infraNamespace)
		if err != nil {
			return err
		}
		items := list.Items()
		if !p.Structured() && len(items) == 0 {
			p.Message("No infrastructure found in namespace %s", list.Namespace)
			return nil
		}
		data := map[string]any{
			"namespace":    list.Namespace,
			"stateStores":  resource.Summarize(list.StateStores),
			"eventStreams": resource.Summarize(list.EventStreams),
		}
		return p.Print(data, func(t *cli.Table) {
			t.Header("Kind", "Name", "Synced", "Ready", "Created")
			for i, s := range resource.Summarize(items) {
				t.Row(items[i].GetKind(), s.Name, resource.StatusText(s.Synced), resource.StatusText(s.Ready), s.CreatedAt)
			}
		})
	},
}

var infraDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete the StateStore and EventStream with this name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		result, err := env.svc.DeleteInfra(cmd.Context(), args[0], infraNamespace)
		if err != nil {
			return err
		}
		if p.Structured() {
			return p.Print(map[string]any{"name": args[0], "result": result}, nil)
		}
		p.Message(cli.FormatSuccess(fmt.Sprintf("Infrastructure %s deleted (%d removed, %d not present)", args[0], result.Succeeded, result.NotFound)))
		return nil
	},
}

func init() {
	infraCmd.PersistentFlags().StringVarP(&infraNamespace, "namespace", "n", "", "Workspace namespace (default: selected workspace)")

	infraAddDBCmd.Flags().StringVar(&infraDBFlags.dbType, "type", resource.DefaultDatabase, "Database engine: postgres, postgresql or redis")
	infraAddDBCmd.Flags().StringVar(&infraDBFlags.tier, "tier", resource.DefaultTier, "Storage tier: dev (1Gi) or prod (10Gi)")

	f := infraAddStreamCmd.Flags()
	f.StringSliceVar(&infraStreamFlags.topics, "topics", nil, "Topic names (comma separated or repeated)")
	f.Int32Var(&infraStreamFlags.partitions, "partitions", 0, "Partitions per topic")
	f.Int32Var(&infraStreamFlags.replicas, "replicas", 0, "Replicas per topic")
	f.StringArrayVar(&infraStreamFlags.config, "config", nil, "Topic config as key=value (repeatable)")

	infraCmd.AddCommand(infraAddDBCmd, infraAddStreamCmd, infraListCmd, infraDeleteCmd)
	rootCmd.AddCommand(infraCmd)
}
