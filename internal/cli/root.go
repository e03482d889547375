package cli

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "flipmatch",
		Short:         "A terminal memory/matching card game",
		Long:          "flipmatch is a memory game: flip cards in pairs, match them all,\nand chase the leaderboard. Running with no subcommand starts a game.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, args)
		},
	}
	addPlayFlags(root)

	play := &cobra.Command{
		Use:   "play",
		Short: "Start a game",
		RunE:  runPlay,
	}
	addPlayFlags(play)

	root.AddCommand(
		play,
		newScoresCmd(),
		newStatsCmd(),
		newExportCmd(),
		newImportCmd(),
		newNameCmd(),
		newResetCmd(),
	)
	return root
}

// Execute runs the command tree.
func Execute() error {
	return newRootCmd().Execute()
}
