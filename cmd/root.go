package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/vizlearn/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "vizlearn",
	Short: "Learn by watching it happen",
	Long:  "VizLearn: step-by-step terminal visualizations of protocols and physics, each followed by a short quiz.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, app.Options{})
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides VIZLEARN_CONFIG env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VIZLEARN_DB env var)")
	rootCmd.PersistentFlags().String("backend", "", "Storage backend: sqlite, redis or memory")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
