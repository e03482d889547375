package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"flipmatch/internal/deck"
	"flipmatch/internal/scoring"
)

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show the high-score leaderboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			lb, err := a.records.HighScores()
			if err != nil {
				return fmt.Errorf("could not load high scores: %w", err)
			}

			entries := lb.Entries
			if name, _ := cmd.Flags().GetString("difficulty"); name != "" {
				d, err := deck.ParseDifficulty(name)
				if err != nil {
					return err
				}
				entries = lb.ForDifficulty(d)
			}

			if len(entries) == 0 {
				fmt.Println("No high scores yet. Go play!")
				return nil
			}

			printScores(entries)
			return nil
		},
	}
	cmd.Flags().StringP("difficulty", "d", "", "only show scores for one difficulty")
	return cmd
}

func printScores(entries []scoring.HighScoreEntry) {
	fmt.Printf("%-4s %-7s %-6s %-8s %-8s %s\n", "#", "SCORE", "MOVES", "TIME", "LEVEL", "WHEN")
	for i, e := range entries {
		secs := int(e.Elapsed.Seconds())
		fmt.Printf("%-4d %-7d %-6d %02d:%02d    %-8s %s\n",
			i+1, e.Score, e.Moves, secs/60, secs%60, e.Difficulty,
			e.Timestamp.Format("2006-01-02 15:04"))
	}
}
