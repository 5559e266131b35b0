package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vizlearn/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all visualizations (optionally filtered by category)",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		configs := registry.GetAllConfigs()
		if category != "" {
			configs = registry.ByCategory(category)
			if len(configs) == 0 {
				return fmt.Errorf("no visualizations found for category %q (have %s)",
					category, strings.Join(registry.Categories(), ", "))
			}
		}

		printList(cmd.OutOrStdout(), configs)
		return nil
	},
}

func printList(w io.Writer, configs []registry.Config) {
	// Header.
	fmt.Fprintf(w, "%-16s  %-40s  %-12s  %5s  %4s\n",
		"Slug", "Title", "Category", "Steps", "Quiz")
	fmt.Fprintln(w, strings.Repeat("─", 85))

	for _, c := range configs {
		title := c.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Fprintf(w, "%-16s  %-40s  %-12s  %5d  %4d\n",
			c.Slug, title, c.Category, len(c.Steps), len(c.Quiz))
	}

	fmt.Fprintf(w, "\n%d visualizations\n", len(configs))
}

func init() {
	listCmd.Flags().String("category", "", "Filter by category (e.g. physics)")
}
