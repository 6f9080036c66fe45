// ABOUTME: Folder command for managing snippet folders.
// ABOUTME: Provides list, create, rename, and rm subcommands.

package main

import (
	"fmt"

	"github.com/harper/scsnip/internal/query"
	"github.com/harper/scsnip/internal/store"
	"github.com/harper/scsnip/internal/ui"
	"github.com/spf13/cobra"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage folders",
	Long:  `List, create, rename, or remove snippet folders. Nested folders use "/".`,
}

var folderListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the folder tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		folders, err := snippetStore.Folders()
		if err != nil {
			return fmt.Errorf("failed to list folders: %w", err)
		}
		if len(folders) == 0 {
			fmt.Println("No folders found.")
			return nil
		}

		snippets, err := snippetStore.LoadAll()
		if err != nil {
			return fmt.Errorf("failed to load snippets: %w", err)
		}
		counts := make(map[string]int)
		for _, s := range snippets {
			counts[s.Folder]++
		}

		fmt.Print(ui.FormatFolderTree(query.FolderTree(folders), counts))
		return nil
	},
}

var folderCreateCmd = &cobra.Command{
	Use:   "create <folder>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, err := store.CleanFolder(args[0])
		if err != nil {
			return fmt.Errorf("invalid folder: %w", err)
		}
		if err := snippetStore.CreateFolder(folder); err != nil {
			return fmt.Errorf("failed to create folder: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Created folder %s", folder)))
		return nil
	},
}

var folderRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a folder and everything under it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := snippetStore.RenameFolder(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to rename folder: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Renamed folder %s to %s", args[0], args[1])))
		return nil
	},
}

var folderRmCmd = &cobra.Command{
	Use:   "rm <folder>",
	Short: "Remove a folder and the snippets in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		folder, err := store.CleanFolder(args[0])
		if err != nil {
			return fmt.Errorf("invalid folder: %w", err)
		}

		snippets, err := snippetStore.LoadAll()
		if err != nil {
			return fmt.Errorf("failed to load snippets: %w", err)
		}
		n := 0
		for _, s := range snippets {
			if store.IsWithin(s.Folder, folder) {
				n++
			}
		}

		if !force && !confirm(fmt.Sprintf("Delete folder %s and %d snippet(s)?", folder, n)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := snippetStore.DeleteFolder(folder); err != nil {
			return fmt.Errorf("failed to delete folder: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Deleted folder %s", folder)))
		return nil
	},
}

func init() {
	folderRmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	folderCmd.AddCommand(folderListCmd)
	folderCmd.AddCommand(folderCreateCmd)
	folderCmd.AddCommand(folderRenameCmd)
	folderCmd.AddCommand(folderRmCmd)
	rootCmd.AddCommand(folderCmd)
}
