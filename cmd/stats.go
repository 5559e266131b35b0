package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/vizlearn/internal/progress"
	"github.com/abhisek/vizlearn/internal/registry"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st := e.progress.GetStats(cmd.Context())
		printStats(cmd.OutOrStdout(), st, len(registry.GetAllSlugs()))
		return nil
	},
}

func printStats(w io.Writer, st progress.Stats, total int) {
	last := st.LastActivityDate
	if last == "" {
		last = "never"
	}
	fmt.Fprintf(w, "Visualizations watched  %d/%d\n", st.TotalVisualized, total)
	fmt.Fprintf(w, "Quizzes completed       %d\n", st.TotalQuizCompleted)
	fmt.Fprintf(w, "Correct answers         %d/%d\n", st.TotalCorrect, st.TotalQuestions)
	fmt.Fprintf(w, "Average score           %d%%\n", st.AverageScore)
	fmt.Fprintf(w, "Day streak              %d\n", st.Streak)
	fmt.Fprintf(w, "Last active             %s\n", last)
}
