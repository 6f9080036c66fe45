// ABOUTME: Tag command for managing snippet tags.
// ABOUTME: Provides add, rm, and list subcommands.

package main

import (
	"fmt"
	"slices"

	"github.com/harper/scsnip/internal/models"
	"github.com/harper/scsnip/internal/query"
	"github.com/harper/scsnip/internal/store"
	"github.com/harper/scsnip/internal/ui"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
	Long:  `Add, remove, or list tags on snippets.`,
}

var tagAddCmd = &cobra.Command{
	Use:   "add <id-prefix> <tag>",
	Short: "Add a tag to a snippet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		snippet, err := store.Find(snippetStore, args[0])
		if err != nil {
			return fmt.Errorf("failed to get snippet: %w", err)
		}

		tags := models.DedupeTags(append(slices.Clone(snippet.Tags), models.ParseTags(args[1])...))
		if err := retag(snippet, tags); err != nil {
			return err
		}

		fmt.Println(ui.Success(fmt.Sprintf("Added tag %q to snippet %s", args[1], snippet.ShortID())))
		return nil
	},
}

var tagRmCmd = &cobra.Command{
	Use:   "rm <id-prefix> <tag>",
	Short: "Remove a tag from a snippet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		snippet, err := store.Find(snippetStore, args[0])
		if err != nil {
			return fmt.Errorf("failed to get snippet: %w", err)
		}
		if !snippet.HasTag(args[1]) {
			return fmt.Errorf("snippet %s has no tag %q", snippet.ShortID(), args[1])
		}

		tags := slices.DeleteFunc(slices.Clone(snippet.Tags), func(t string) bool { return t == args[1] })
		if err := retag(snippet, tags); err != nil {
			return err
		}

		fmt.Println(ui.Success(fmt.Sprintf("Removed tag %q from snippet %s", args[1], snippet.ShortID())))
		return nil
	},
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		snippets, err := snippetStore.LoadAll()
		if err != nil {
			return fmt.Errorf("failed to load snippets: %w", err)
		}

		counts := query.TagCounts(snippets)
		if len(counts) == 0 {
			fmt.Println("No tags found.")
			return nil
		}

		fmt.Print(ui.FormatTagList(counts))
		return nil
	},
}

func retag(s *models.Snippet, tags []string) error {
	updated, err := s.WithUpdatedContent(s.Name, s.Description, s.Code, tags, s.Folder)
	if err != nil {
		return fmt.Errorf("failed to update tags: %w", err)
	}
	if _, err := snippetStore.Save(updated); err != nil {
		return fmt.Errorf("failed to save snippet: %w", err)
	}
	return nil
}

func init() {
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRmCmd)
	tagCmd.AddCommand(tagListCmd)
	rootCmd.AddCommand(tagCmd)
}
