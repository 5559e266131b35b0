package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vizlearn/internal/progress"
	"github.com/abhisek/vizlearn/internal/registry"
)

var progressCmd = &cobra.Command{
	Use:   "progress [slug]",
	Short: "Show per-visualization progress records",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		w := cmd.OutOrStdout()

		if len(args) == 1 {
			if _, err := registry.Lookup(args[0]); err != nil {
				return err
			}
			data, err := json.MarshalIndent(e.progress.GetProgress(ctx, args[0]), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal progress: %w", err)
			}
			fmt.Fprintln(w, string(data))
			return nil
		}

		printProgress(w, registry.GetAllConfigs(), e.progress.All(ctx))
		return nil
	},
	ValidArgsFunction: completeSlugs,
}

func printProgress(w io.Writer, configs []registry.Config, records map[string]progress.Progress) {
	// Header.
	fmt.Fprintf(w, "%-16s  %-7s  %-6s  %-8s  %s\n",
		"Slug", "Watched", "Best", "Attempts", "First watched")
	fmt.Fprintln(w, strings.Repeat("─", 70))

	for _, c := range configs {
		p := records[c.Slug]
		watched := "✗"
		if p.Completed {
			watched = "✓"
		}
		best := "-"
		if p.QuizScore != nil && p.QuizTotal != nil {
			best = fmt.Sprintf("%d/%d", *p.QuizScore, *p.QuizTotal)
		}
		first := "-"
		if p.CompletedAt != nil {
			first = p.CompletedAt.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%-16s  %-7s  %-6s  %-8d  %s\n",
			c.Slug, watched, best, p.Attempts, first)
	}
}
