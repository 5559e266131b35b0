package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/vizlearn/internal/app"
	"github.com/abhisek/vizlearn/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <slug>",
	Short: "Open one visualization directly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := registry.Lookup(args[0]); err != nil {
			return err
		}
		return runApp(cmd, app.Options{StartSlug: args[0], StartMode: app.StartPlay})
	},
	ValidArgsFunction: completeSlugs,
}

var quizCmd = &cobra.Command{
	Use:   "quiz <slug>",
	Short: "Open one visualization's quiz directly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := registry.Lookup(args[0])
		if err != nil {
			return err
		}
		if len(cfg.Quiz) == 0 {
			return fmt.Errorf("%s has no quiz", args[0])
		}
		return runApp(cmd, app.Options{StartSlug: args[0], StartMode: app.StartQuiz})
	},
	ValidArgsFunction: completeSlugs,
}

func completeSlugs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return registry.GetAllSlugs(), cobra.ShellCompDirectiveNoFileComp
}
