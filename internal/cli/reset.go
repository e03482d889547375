package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"flipmatch/internal/storage"
)

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all persisted data (scores, stats, settings, suspended game)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				fmt.Print("This deletes all scores, stats and settings. Continue? [y/N] ")
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if strings.ToLower(strings.TrimSpace(answer)) != "y" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			keys := []string{
				storage.KeyHighScores,
				storage.KeyStats,
				storage.KeySettings,
				storage.KeySnapshot,
				storage.KeyPlayerName,
				storage.KeyThemePreference,
			}
			for _, key := range keys {
				if err := a.store.Remove(key); err != nil {
					return fmt.Errorf("could not remove %s: %w", key, err)
				}
			}
			fmt.Println("All data deleted.")
			return nil
		},
	}
	cmd.Flags().BoolP("force", "f", false, "skip the confirmation prompt")
	return cmd
}
