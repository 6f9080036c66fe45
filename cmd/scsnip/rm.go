// ABOUTME: Remove command for deleting snippets.
// ABOUTME: Includes confirmation prompt before deletion.

package main

import (
	"fmt"

	"github.com/harper/scsnip/internal/store"
	"github.com/harper/scsnip/internal/ui"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id-prefix>",
	Short: "Remove a snippet",
	Long:  `Delete a snippet file from its folder.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		snippet, err := store.Find(snippetStore, args[0])
		if err != nil {
			return fmt.Errorf("failed to get snippet: %w", err)
		}

		if !force && !confirm(fmt.Sprintf("Delete snippet %q (%s)?", snippet.Name, snippet.ShortID())) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := snippetStore.Delete(snippet.ID, snippet.Folder); err != nil {
			return fmt.Errorf("failed to delete snippet: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Deleted snippet %s", snippet.ShortID())))
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
}
