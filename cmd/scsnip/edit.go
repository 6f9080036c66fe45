// ABOUTME: Edit command for modifying existing snippets.
// ABOUTME: Opens code in $EDITOR or applies metadata changes from flags.

package main

import (
	"fmt"
	"slices"

	"github.com/harper/scsnip/internal/models"
	"github.com/harper/scsnip/internal/store"
	"github.com/harper/scsnip/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id-prefix>",
	Short: "Edit a snippet",
	Long: `Change a snippet's name, description, tags, or folder with flags.
Without any flags the code is opened in $EDITOR.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snippet, err := store.Find(snippetStore, args[0])
		if err != nil {
			return fmt.Errorf("failed to get snippet: %w", err)
		}

		name := snippet.Name
		desc := snippet.Description
		code := snippet.Code
		tags := snippet.Tags
		folder := snippet.Folder

		flags := cmd.Flags()
		if flags.Changed("name") {
			name, _ = flags.GetString("name")
		}
		if flags.Changed("description") {
			d, _ := flags.GetString("description")
			desc = models.StringPtr(d)
			if d == "" {
				desc = nil
			}
		}
		if flags.Changed("tags") {
			t, _ := flags.GetString("tags")
			tags = models.ParseTags(t)
		}
		if flags.Changed("folder") {
			f, _ := flags.GetString("folder")
			if folder, err = store.CleanFolder(f); err != nil {
				return fmt.Errorf("invalid folder: %w", err)
			}
		}
		if flags.Changed("code") {
			code, _ = flags.GetString("code")
		}

		edited := false
		for _, f := range []string{"name", "description", "tags", "folder", "code"} {
			edited = edited || flags.Changed(f)
		}
		if !edited || flags.Changed("editor") {
			code, err = openEditor(snippet.Code)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
		}

		if unchanged(snippet, name, desc, code, tags, folder) {
			fmt.Println("No changes made.")
			return nil
		}

		updated, err := snippet.WithUpdatedContent(name, desc, code, tags, folder)
		if err != nil {
			return fmt.Errorf("failed to update snippet: %w", err)
		}
		if _, err := snippetStore.Save(updated); err != nil {
			return fmt.Errorf("failed to save snippet: %w", err)
		}
		if updated.Folder != snippet.Folder {
			if err := snippetStore.Delete(snippet.ID, snippet.Folder); err != nil {
				return fmt.Errorf("failed to remove old copy: %w", err)
			}
		}

		fmt.Println(ui.Success(fmt.Sprintf("Updated snippet %s", updated.ShortID())))
		return nil
	},
}

func unchanged(s *models.Snippet, name string, desc *string, code string, tags []string, folder string) bool {
	sameDesc := (s.Description == nil && desc == nil) ||
		(s.Description != nil && desc != nil && *s.Description == *desc)
	return sameDesc &&
		s.Name == name &&
		s.Code == code &&
		slices.Equal(s.Tags, tags) &&
		s.Folder == folder
}

func init() {
	editCmd.Flags().String("name", "", "new name")
	editCmd.Flags().StringP("description", "d", "", "new description (empty clears it)")
	editCmd.Flags().String("tags", "", "replace tags (comma-separated)")
	editCmd.Flags().StringP("folder", "f", "", "move to folder")
	editCmd.Flags().String("code", "", "replace code (inline)")
	editCmd.Flags().BoolP("editor", "e", false, "open code in $EDITOR alongside other flags")
	rootCmd.AddCommand(editCmd)
}
