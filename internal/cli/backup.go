package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export scores, stats and settings as a JSON backup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			blob, err := a.records.Export()
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("output")
			if out == "" || out == "-" {
				fmt.Println(string(blob))
				return nil
			}
			if err := os.WriteFile(out, blob, 0644); err != nil {
				return fmt.Errorf("could not write backup: %w", err)
			}
			fmt.Printf("Exported to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "write the backup to a file instead of stdout")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("could not read backup: %w", err)
			}
			if err := a.records.Import(data); err != nil {
				return err
			}
			fmt.Println("Backup imported.")
			return nil
		},
	}
}
