// ABOUTME: Add command for creating new snippets.
// ABOUTME: Supports inline code, file input, or $EDITOR.

package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/harper/scsnip/internal/models"
	"github.com/harper/scsnip/internal/store"
	"github.com/harper/scsnip/internal/ui"
	"github.com/spf13/cobra"
)

const defaultFolder = "sketches"

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new snippet",
	Long:  `Create a new snippet with the given name. Code can be provided via --code, --file, or $EDITOR.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		tagsFlag, _ := cmd.Flags().GetString("tags")
		codeFlag, _ := cmd.Flags().GetString("code")
		fileFlag, _ := cmd.Flags().GetString("file")
		folderFlag, _ := cmd.Flags().GetString("folder")
		descFlag, _ := cmd.Flags().GetString("description")

		folder, err := store.CleanFolder(folderFlag)
		if err != nil {
			return fmt.Errorf("invalid folder: %w", err)
		}

		var code string
		switch {
		case codeFlag != "":
			code = codeFlag
		case fileFlag != "":
			data, err := os.ReadFile(fileFlag) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			code = string(data)
		default:
			code, err = openEditor("")
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
		}

		if strings.TrimSpace(code) == "" {
			return fmt.Errorf("snippet code cannot be empty")
		}

		var desc *string
		if cmd.Flags().Changed("description") {
			desc = models.StringPtr(descFlag)
		}

		snippet, err := models.NewSnippet(name, desc, code, models.ParseTags(tagsFlag), folder)
		if err != nil {
			return fmt.Errorf("failed to create snippet: %w", err)
		}
		if _, err := snippetStore.Save(snippet); err != nil {
			return fmt.Errorf("failed to save snippet: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Created snippet %s in %s", snippet.ShortID(), folder)))
		return nil
	},
}

func editorCommand() string {
	if appConfig != nil && appConfig.Editor != "" {
		return appConfig.Editor
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vim"
}

func openEditor(initial string) (string, error) {
	tmpFile, err := os.CreateTemp("", "scsnip-*.scd")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name()) // Best-effort cleanup
	}()

	if initial != "" {
		if _, err := tmpFile.WriteString(initial); err != nil {
			_ = tmpFile.Close()
			return "", fmt.Errorf("failed to write initial content: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.Command(editorCommand(), tmpFile.Name()) //nolint:gosec // Launching $EDITOR is expected CLI behavior
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func init() {
	addCmd.Flags().String("tags", "", "comma-separated tags")
	addCmd.Flags().String("code", "", "snippet code (inline)")
	addCmd.Flags().String("file", "", "read code from file")
	addCmd.Flags().StringP("folder", "f", defaultFolder, "folder to store the snippet in")
	addCmd.Flags().StringP("description", "d", "", "short description")
	rootCmd.AddCommand(addCmd)
}
