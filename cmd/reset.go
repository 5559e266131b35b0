package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all progress and the day streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		all, _ := cmd.Flags().GetBool("all")

		prompt := "Reset all progress and the day streak? [y/N] "
		if all {
			prompt = "Delete every stored vizlearn key? [y/N] "
		}
		if !yes {
			fmt.Fprint(cmd.OutOrStdout(), prompt)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if all {
			if !e.storage.Clear(cmd.Context()) {
				return fmt.Errorf("clear storage: durable store could not be cleared")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All stored data cleared.")
			return nil
		}

		e.progress.ResetProgress(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	resetCmd.Flags().Bool("all", false, "Delete every key in the storage backend, not just progress")
}
