// ABOUTME: Export command for backing up snippets.
// ABOUTME: Supports JSON documents and markdown with YAML frontmatter.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/scsnip/internal/models"
	"github.com/harper/scsnip/internal/query"
	"github.com/harper/scsnip/internal/store"
	"github.com/harper/scsnip/internal/ui"
	"github.com/spf13/cobra"
)

const maxFilenameRunes = 100

var exportCmd = &cobra.Command{
	Use:   "export [id-prefix]",
	Short: "Export snippets",
	Long: `Export one snippet to stdout or a file, or every snippet into a
directory that mirrors the folder layout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatFlag, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		folderFlag, _ := cmd.Flags().GetString("folder")
		tagFlag, _ := cmd.Flags().GetString("tag")

		format, err := store.ParseFormat(formatFlag)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			snippet, err := store.Find(snippetStore, args[0])
			if err != nil {
				return fmt.Errorf("failed to get snippet: %w", err)
			}
			return exportOne(snippet, format, outputPath)
		}

		snippets, err := snippetStore.LoadAll()
		if err != nil {
			return fmt.Errorf("failed to load snippets: %w", err)
		}
		filter, err := store.CleanFilter(query.Filter{Folder: folderFlag, Tag: tagFlag})
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
		snippets = query.Apply(snippets, filter)
		return exportAll(snippets, format, outputPath)
	},
}

func exportOne(s *models.Snippet, format store.Format, outputPath string) error {
	data, err := store.Export(s, format)
	if err != nil {
		return fmt.Errorf("failed to export snippet: %w", err)
	}

	if outputPath == "" || outputPath == "-" {
		fmt.Print(string(data))
		if !strings.HasSuffix(string(data), "\n") {
			fmt.Println()
		}
		return nil
	}

	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Println(ui.Success(fmt.Sprintf("Exported %s to %s", s.ShortID(), outputPath)))
	return nil
}

func exportAll(snippets []*models.Snippet, format store.Format, outputDir string) error {
	if outputDir == "" {
		outputDir = "export"
	}

	for _, s := range snippets {
		data, err := store.Export(s, format)
		if err != nil {
			return fmt.Errorf("failed to export %s: %w", s.ShortID(), err)
		}

		dir := filepath.Join(outputDir, filepath.FromSlash(s.Folder))
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}

		name := s.ID.String() + ".json"
		if format == store.FormatMarkdown {
			name = sanitizeFilename(s.Name) + "-" + s.ShortID() + ".md"
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0600); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	}

	fmt.Println(ui.Success(fmt.Sprintf("Exported %d snippets to %s", len(snippets), outputDir)))
	return nil
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	name = replacer.Replace(name)
	if runes := []rune(name); len(runes) > maxFilenameRunes {
		name = string(runes[:maxFilenameRunes])
	}
	return name
}

func init() {
	exportCmd.Flags().String("format", string(store.FormatJSON), "export format (json|md)")
	exportCmd.Flags().StringP("output", "o", "", "output file (single snippet) or directory")
	exportCmd.Flags().StringP("folder", "f", "", "only export this folder")
	exportCmd.Flags().StringP("tag", "t", "", "only export snippets with this tag")
	rootCmd.AddCommand(exportCmd)
}
