package cmd

import (
	"github.com/spf13/cobra"

	"shoulders/internal/cli"
	"shoulders/internal/resource"
)

var workspaceCmd = &cobra.Command{
	Use:     "workspace",
	Aliases: []string{"ws"},
	Short:   "Manage workspaces",
	Long: `A workspace is a cluster-scoped Workspace resource that owns a namespace of
the same name. The selected workspace is remembered in ~/.shoulders/config.yaml
and used as the default namespace by the app, infra and logs commands.`,
}

var workspaceCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a workspace, or update it if it exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		out, err := env.svc.CreateWorkspace(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printOutcome(p, "Workspace", out)
	},
}

var workspaceListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workspaces",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		items, err := env.svc.ListWorkspaces(cmd.Context())
		if err != nil {
			return err
		}
		current, err := env.svc.CurrentWorkspace()
		if err != nil {
			return err
		}
		summaries := resource.Summarize(items)
		if !p.Structured() && len(summaries) == 0 {
			p.Message("No workspaces found")
			return nil
		}
		return p.Print(summaries, func(t *cli.Table) {
			t.Header("Current", "Name", "Synced", "Ready", "Created")
			for _, s := range summaries {
				marker := " "
				if s.Name == current {
					marker = "*"
				}
				t.Row(marker, s.Name, resource.StatusText(s.Synced), resource.StatusText(s.Ready), s.CreatedAt)
			}
		})
	},
}

var workspaceUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Select the workspace used by default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		if err := env.svc.UseWorkspace(cmd.Context(), args[0]); err != nil {
			return err
		}
		if p.Structured() {
			return p.Print(map[string]string{"name": args[0]}, nil)
		}
		p.Message(cli.FormatSuccess("Using workspace " + args[0]))
		return nil
	},
}

var workspaceCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the selected workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		name, err := env.svc.CurrentWorkspace()
		if err != nil {
			return err
		}
		if p.Structured() {
			var value any
			if name != "" {
				value = name
			}
			return p.Print(map[string]any{"name": value}, nil)
		}
		if name == "" {
			p.Message("No workspace selected")
			return nil
		}
		p.Message(name)
		return nil
	},
}

var workspaceDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		if err := env.svc.DeleteWorkspace(cmd.Context(), args[0]); err != nil {
			return err
		}
		return printDeleted(p, "Workspace", args[0])
	},
}

func init() {
	workspaceCmd.AddCommand(workspaceCreateCmd, workspaceListCmd, workspaceUseCmd, workspaceCurrentCmd, workspaceDeleteCmd)
	rootCmd.AddCommand(workspaceCmd)
}
