// ABOUTME: Show command for displaying a single snippet.
// ABOUTME: Renders the description and code block with glamour.

package main

import (
	"fmt"

	"github.com/harper/scsnip/internal/store"
	"github.com/harper/scsnip/internal/ui"
	"github.com/harper/scsnip/internal/wrap"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show a snippet",
	Long:  `Display a snippet's metadata, description, and code.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawFlag, _ := cmd.Flags().GetBool("raw")
		wrappedFlag, _ := cmd.Flags().GetBool("wrapped")

		snippet, err := store.Find(snippetStore, args[0])
		if err != nil {
			return fmt.Errorf("failed to get snippet: %w", err)
		}

		if rawFlag || wrappedFlag {
			code := snippet.Code
			if wrappedFlag {
				code = wrap.Wrap(code)
			}
			fmt.Println(code)
			return nil
		}

		fmt.Print(ui.FormatSnippetHeader(snippet))
		content, _ := ui.FormatMarkdown(ui.SnippetMarkdown(snippet))
		fmt.Print(content)
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("raw", false, "print only the code")
	showCmd.Flags().Bool("wrapped", false, "print the code as it would be sent on play")
	rootCmd.AddCommand(showCmd)
}
