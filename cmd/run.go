package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/vizlearn/internal/app"
)

// runApp opens the environment, fills in the dependencies of opts and
// launches the TUI.
func runApp(cmd *cobra.Command, opts app.Options) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	opts.Progress = e.progress
	opts.Storage = e.storage
	opts.Logger = e.logger

	return app.Run(opts)
}
