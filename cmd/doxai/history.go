// cmd/doxai/history.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doxai/doxai/internal/output"
	"github.com/doxai/doxai/internal/store"
)

func historyCmd(g *globalOptions) *cobra.Command {
	var opts store.ListOptions
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs from the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, g, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Repository, "repo", "", "only runs for owner/name")
	cmd.Flags().IntVar(&opts.PRNumber, "pr", 0, "only runs for this pull request")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs")
	return cmd
}

func runHistory(cmd *cobra.Command, g *globalOptions, opts store.ListOptions) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	if cfg.Ledger.Path == "" {
		return fmt.Errorf("no ledger configured: pass --ledger or set [ledger] path")
	}

	ledger, err := store.NewStore(cfg.Ledger.Path)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer ledger.Close()

	runs, err := ledger.ListRuns(cmd.Context(), opts)
	if err != nil {
		return err
	}
	return writeHistory(cmd.OutOrStdout(), g.output, runs)
}

func writeHistory(w io.Writer, format string, runs []store.Run) error {
	if format == "json" {
		if runs == nil {
			runs = []store.Run{}
		}
		data, err := json.MarshalIndent(runs, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	return output.WriteMarkdown(w, historyTable(runs))
}

func historyTable(runs []store.Run) string {
	if len(runs) == 0 {
		return "No runs recorded.\n"
	}
	var b strings.Builder
	b.WriteString("| Started | Run | PR | State | Generated | Updated | Deleted | Skipped | Failed | Docs PR |\n")
	b.WriteString("|---------|-----|----|-------|-----------|---------|---------|---------|--------|---------|\n")
	for _, r := range runs {
		state := r.State
		if r.DryRun {
			state += " (dry run)"
		}
		docsPR := r.DocsPRURL
		if docsPR == "" {
			docsPR = "-"
		}
		fmt.Fprintf(&b, "| %s | `%s` | %s#%d | %s | %d | %d | %d | %d | %d | %s |\n",
			r.StartedAt.UTC().Format(time.RFC3339), r.ID, r.Repository, r.PRNumber, state,
			r.Generated, r.Updated, r.Deleted, r.Skipped, r.Failed, docsPR)
	}
	return b.String()
}
