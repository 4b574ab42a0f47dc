package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"shoulders/internal/cli"
	"shoulders/internal/resource"
)

var appNamespace string

var appInitFlags struct {
	image    string
	tag      string
	replicas int
	host     string
	port     int
	dryRun   bool
}

var appCmd = &cobra.Command{
	Use:     "app",
	Aliases: []string{"apps"},
	Short:   "Manage web applications",
	Long: `Web applications are WebApplication resources inside a workspace namespace.
Without --namespace the selected workspace is used.`,
}

var appInitCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Deploy a web application, or update it if it exists",
	Example: `  shoulders app init web --image nginx:1.27 --host web.local
  shoulders app init web --image ghcr.io/acme/web --tag v2 --replicas 3 --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		opts := resource.AppOptions{
			Name:      args[0],
			Namespace: appNamespace,
			Image:     appInitFlags.image,
			Tag:       appInitFlags.tag,
			Host:      appInitFlags.host,
		}
		if cmd.Flags().Changed("replicas") {
			opts.Replicas = ptr.To(appInitFlags.replicas)
		}
		if cmd.Flags().Changed("port") {
			opts.Port = ptr.To(appInitFlags.port)
		}

		if appInitFlags.dryRun {
			obj, err := env.svc.RenderApp(opts)
			if err != nil {
				return err
			}
			if rootFlags.OutputFormat == string(cli.OutputFormatJSON) {
				return p.Print(obj.Object, nil)
			}
			out, err := yaml.Marshal(obj.Object)
			if err != nil {
				return fmt.Errorf("failed to render manifest: %w", err)
			}
			_, err = p.Out().Write(out)
			return err
		}

		out, err := env.svc.DeployApp(cmd.Context(), opts)
		if err != nil {
			return err
		}
		return printOutcome(p, "Application", out)
	},
}

var appListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List web applications",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		items, ns, err := env.svc.ListApps(cmd.Context(), appNamespace)
		if err != nil {
			return err
		}
		if !p.Structured() && len(items) == 0 {
			p.Message("No applications found in namespace %s", ns)
			return nil
		}
		summaries := resource.Summarize(items)
		return p.Print(summaries, func(t *cli.Table) {
			t.Header("Name", "Image", "Replicas", "Host", "Synced", "Ready")
			for i := range items {
				item := &items[i]
				image := nestedString(item, "spec", "image")
				if tag := nestedString(item, "spec", "tag"); tag != "" {
					image += ":" + tag
				}
				t.Row(item.GetName(), image, nestedString(item, "spec", "replicas"), nestedString(item, "spec", "host"),
					resource.StatusText(summaries[i].Synced), resource.StatusText(summaries[i].Ready))
			}
		})
	},
}

var appDescribeCmd = &cobra.Command{
	Use:     "describe <name>",
	Aliases: []string{"status"},
	Short:   "Show a web application and its status",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		obj, err := env.svc.GetApp(cmd.Context(), args[0], appNamespace)
		if err != nil {
			return err
		}
		return p.Print(obj.Object, func(t *cli.Table) {
			t.Header("Field", "Value")
			t.Row("Name", obj.GetName())
			t.Row("Namespace", obj.GetNamespace())
			t.Row("Image", nestedString(obj, "spec", "image"))
			t.Row("Tag", nestedString(obj, "spec", "tag"))
			t.Row("Replicas", nestedString(obj, "spec", "replicas"))
			t.Row("Host", nestedString(obj, "spec", "host"))
			t.Row("Synced", resource.StatusText(resource.ConditionStatus(obj, "Synced")))
			t.Row("Ready", resource.StatusText(resource.ConditionStatus(obj, "Ready")))
		})
	},
}

var appDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a web application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		if err := env.svc.DeleteApp(cmd.Context(), args[0], appNamespace); err != nil {
			return err
		}
		return printDeleted(p, "Application", args[0])
	},
}

func init() {
	appCmd.PersistentFlags().StringVarP(&appNamespace, "namespace", "n", "", "Workspace namespace (default: selected workspace)")

	f := appInitCmd.Flags()
	f.StringVar(&appInitFlags.image, "image", "", "Container image, optionally with :tag")
	f.StringVar(&appInitFlags.tag, "tag", "", "Image tag, overrides a tag in --image")
	f.IntVar(&appInitFlags.replicas, "replicas", resource.DefaultReplicas, "Number of replicas")
	f.StringVar(&appInitFlags.host, "host", "", "Ingress host (default <name>.local)")
	f.IntVar(&appInitFlags.port, "port", resource.DefaultPort, "Container port, 0 omits the port annotation")
	f.BoolVar(&appInitFlags.dryRun, "dry-run", false, "Print the manifest instead of applying it")

	appCmd.AddCommand(appInitCmd, appListCmd, appDescribeCmd, appDeleteCmd)
	rootCmd.AddCommand(appCmd)
}
