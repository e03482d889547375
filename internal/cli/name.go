package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name [value]",
		Short: "Show or set the player display name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if len(args) == 0 {
				name, err := a.records.PlayerName()
				if err != nil {
					return err
				}
				if name == "" {
					fmt.Println("No player name set.")
				} else {
					fmt.Println(name)
				}
				return nil
			}

			if err := a.records.SetPlayerName(args[0]); err != nil {
				return err
			}
			fmt.Printf("Player name set to %q.\n", args[0])
			return nil
		},
	}
}
