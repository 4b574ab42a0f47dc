package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"shoulders/internal/cli"
	"shoulders/internal/platform"
)

var logsFlags struct {
	namespace string
	limit     int
	since     int
}

var logsCmd = &cobra.Command{
	Use:   "logs <app>",
	Short: "Show recent logs of a web application",
	Long: `Queries Loki through a temporary port-forward for lines labelled app=<app>.
When Loki cannot be reached the logs are read from the application's pods.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		var res *platform.LogsResult
		err = cli.WithSpinner(cmd.ErrOrStderr(), rootFlags.Quiet || p.Structured(), "Fetching logs...", func() error {
			var err error
			res, err = env.svc.AppLogs(cmd.Context(), platform.LogsRequest{
				Name:         args[0],
				Namespace:    logsFlags.namespace,
				Limit:        logsFlags.limit,
				SinceSeconds: logsFlags.since,
			})
			return err
		})
		if err != nil {
			return err
		}
		if p.Structured() {
			return p.Print(res, nil)
		}
		if res.Source == platform.SourceKubernetes {
			fmt.Fprintln(p.Out(), res.Output)
			return nil
		}
		lines := lokiLines(res.Loki)
		if len(lines) == 0 {
			p.Message("No log lines found for %s", args[0])
			return nil
		}
		for _, l := range lines {
			fmt.Fprintln(p.Out(), l)
		}
		return nil
	},
}

var traceCmd = &cobra.Command{
	Use:   "trace <trace-id>",
	Short: "Fetch a trace from Tempo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, p, err := commandEnv(cmd)
		if err != nil {
			return err
		}
		var trace any
		err = cli.WithSpinner(cmd.ErrOrStderr(), rootFlags.Quiet || p.Structured(), "Fetching trace...", func() error {
			var err error
			trace, err = env.svc.Trace(cmd.Context(), args[0])
			return err
		})
		if err != nil {
			return err
		}
		if p.Structured() {
			return p.Print(trace, nil)
		}
		// Traces are deeply nested; tables would hide most of them.
		out, err := json.MarshalIndent(trace, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode trace: %w", err)
		}
		fmt.Fprintln(p.Out(), string(out))
		return nil
	},
}

type lokiEntry struct {
	ts   string
	line string
}

// lokiLines extracts the log lines of a query_range response, oldest first.
func lokiLines(resp any) []string {
	root, _ := resp.(map[string]any)
	data, _ := root["data"].(map[string]any)
	streams, _ := data["result"].([]any)

	var entries []lokiEntry
	for _, s := range streams {
		stream, _ := s.(map[string]any)
		values, _ := stream["values"].([]any)
		for _, v := range values {
			pair, ok := v.([]any)
			if !ok || len(pair) != 2 {
				continue
			}
			ts, _ := pair[0].(string)
			line, _ := pair[1].(string)
			entries = append(entries, lokiEntry{ts: ts, line: line})
		}
	}
	// Timestamps are decimal nanosecond strings, so shorter means older.
	sort.SliceStable(entries, func(i, j int) bool {
		if len(entries[i].ts) != len(entries[j].ts) {
			return len(entries[i].ts) < len(entries[j].ts)
		}
		return entries[i].ts < entries[j].ts
	})
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.line)
	}
	return lines
}

func init() {
	logsCmd.Flags().StringVarP(&logsFlags.namespace, "namespace", "n", "", "Workspace namespace (default: selected workspace)")
	logsCmd.Flags().IntVar(&logsFlags.limit, "limit", platform.DefaultLogLimit, fmt.Sprintf("Maximum number of lines (1-%d)", platform.MaxLogLimit))
	logsCmd.Flags().IntVar(&logsFlags.since, "since", platform.DefaultLogSince, fmt.Sprintf("Look back this many seconds (%d-%d)", platform.MinLogSince, platform.MaxLogSince))

	rootCmd.AddCommand(logsCmd, traceCmd)
}
