// ABOUTME: List command for displaying snippets.
// ABOUTME: Supports search, folder, and tag filters with per-folder sections.

package main

import (
	"fmt"

	"github.com/harper/scsnip/internal/models"
	"github.com/harper/scsnip/internal/query"
	"github.com/harper/scsnip/internal/store"
	"github.com/harper/scsnip/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List snippets",
	Long: `List snippets, newest first, grouped by folder.

A tag filter takes precedence over a folder filter. Search matches name,
code, tags, and description without regard to case.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		searchFlag, _ := cmd.Flags().GetString("search")
		folderFlag, _ := cmd.Flags().GetString("folder")
		tagFlag, _ := cmd.Flags().GetString("tag")
		limitFlag, _ := cmd.Flags().GetInt("limit")
		flatFlag, _ := cmd.Flags().GetBool("flat")

		snippets, err := snippetStore.LoadAll()
		if err != nil {
			return fmt.Errorf("failed to load snippets: %w", err)
		}

		filter, err := store.CleanFilter(query.Filter{SearchText: searchFlag, Folder: folderFlag, Tag: tagFlag})
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
		snippets = query.Apply(snippets, filter)
		if limitFlag > 0 && len(snippets) > limitFlag {
			snippets = snippets[:limitFlag]
		}

		if !filter.IsEmpty() {
			fmt.Print(ui.FormatFilterLabel(filter))
		}

		if len(snippets) == 0 {
			fmt.Println("No snippets found.")
			return nil
		}

		if flatFlag {
			for _, s := range snippets {
				fmt.Print(ui.FormatSnippetListItem(s))
			}
			return nil
		}

		order, groups := groupByFolder(snippets)
		for _, folder := range order {
			fmt.Print(ui.FormatFolderSectionHeader(folder))
			for _, s := range groups[folder] {
				fmt.Print(ui.FormatSnippetListItem(s))
			}
		}
		return nil
	},
}

// groupByFolder buckets snippets by folder, keeping their relative order.
// Folders are returned sorted.
func groupByFolder(snippets []*models.Snippet) ([]string, map[string][]*models.Snippet) {
	groups := make(map[string][]*models.Snippet)
	var order []string
	for _, s := range snippets {
		if _, ok := groups[s.Folder]; !ok {
			order = append(order, s.Folder)
		}
		groups[s.Folder] = append(groups[s.Folder], s)
	}
	store.SortFolders(order)
	return order, groups
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "search text")
	listCmd.Flags().StringP("folder", "f", "", "filter by folder")
	listCmd.Flags().StringP("tag", "t", "", "filter by tag")
	listCmd.Flags().IntP("limit", "n", 0, "maximum number of results (0 for all)")
	listCmd.Flags().Bool("flat", false, "print without folder sections")
	rootCmd.AddCommand(listCmd)
}
