// ABOUTME: Duplicate command for copying a snippet.
// ABOUTME: The copy gets a new id and " (Copy)" appended to its name.

package main

import (
	"fmt"

	"github.com/harper/scsnip/internal/store"
	"github.com/harper/scsnip/internal/ui"
	"github.com/spf13/cobra"
)

var dupCmd = &cobra.Command{
	Use:   "dup <id-prefix>",
	Short: "Duplicate a snippet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snippet, err := store.Find(snippetStore, args[0])
		if err != nil {
			return fmt.Errorf("failed to get snippet: %w", err)
		}

		dup, err := snippet.Duplicate()
		if err != nil {
			return fmt.Errorf("failed to duplicate snippet: %w", err)
		}
		if _, err := snippetStore.Save(dup); err != nil {
			return fmt.Errorf("failed to save snippet: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Created %q as %s", dup.Name, dup.ShortID())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dupCmd)
}
