// ABOUTME: Move command for placing a snippet in another folder.
// ABOUTME: The folder is created if it does not exist yet.

package main

import (
	"fmt"

	"github.com/harper/scsnip/internal/store"
	"github.com/harper/scsnip/internal/ui"
	"github.com/spf13/cobra"
)

var mvCmd = &cobra.Command{
	Use:   "mv <id-prefix> <folder>",
	Short: "Move a snippet to a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		snippet, err := store.Find(snippetStore, args[0])
		if err != nil {
			return fmt.Errorf("failed to get snippet: %w", err)
		}

		moved, err := store.Move(snippetStore, snippet, args[1])
		if err != nil {
			return fmt.Errorf("failed to move snippet: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Moved snippet %s to %s", moved.ShortID(), moved.Folder)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mvCmd)
}
