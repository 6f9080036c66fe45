// ABOUTME: Import command for restoring snippets from exports.
// ABOUTME: Accepts a JSON or markdown file, or a directory of them.

package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/scsnip/internal/codec"
	"github.com/harper/scsnip/internal/store"
	"github.com/harper/scsnip/internal/ui"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import snippets",
	Long: `Import snippets from a JSON or markdown file, or from a directory of
them. Snippets keep their ids, so importing twice overwrites.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		folder, _ := cmd.Flags().GetString("folder")

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}

		if !info.IsDir() {
			return importFile(path, folder)
		}

		count := 0
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isImportable(p) {
				return nil
			}
			if err := importFile(p, folder); err != nil {
				if !codec.IsDecodeError(err) {
					return err
				}
				fmt.Fprintf(os.Stderr, "Warning: skipping %v\n", err)
				return nil
			}
			count++
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to import directory: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Imported %d snippets", count)))
		return nil
	},
}

func isImportable(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".json" || ext == ".md"
}

func importFile(path, folder string) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	s, err := store.Import(snippetStore, data, folder)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}

	fmt.Println(ui.Success(fmt.Sprintf("Imported %q as %s into %s", s.Name, s.ShortID(), s.Folder)))
	return nil
}

func init() {
	importCmd.Flags().StringP("folder", "f", "imported", "folder to place imported snippets in")
	rootCmd.AddCommand(importCmd)
}
