package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate player statistics",
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := a.records.Stats()
			if err != nil {
				return fmt.Errorf("could not load stats: %w", err)
			}

			name, err := a.records.PlayerName()
			if err == nil && name != "" {
				fmt.Printf("Player: %s\n", name)
			}

			fmt.Printf("Games played:  %d\n", st.GamesPlayed)
			fmt.Printf("Games won:     %d\n", st.GamesWon)
			fmt.Printf("Total moves:   %d\n", st.TotalMoves)
			if st.GamesWon > 0 {
				best := int(st.BestTime.Seconds())
				avg := int(st.AvgTime.Seconds())
				fmt.Printf("Best time:     %02d:%02d\n", best/60, best%60)
				fmt.Printf("Best moves:    %d\n", st.BestMoves)
				fmt.Printf("Average time:  %02d:%02d\n", avg/60, avg%60)
			}
			if !st.LastPlayed.IsZero() {
				fmt.Printf("Last played:   %s\n", st.LastPlayed.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
