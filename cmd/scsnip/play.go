// ABOUTME: Play and stop commands for sending snippets to SuperCollider.
// ABOUTME: Code is wrapped for evaluation and sent over OSC.

package main

import (
	"fmt"
	"os"

	"github.com/harper/scsnip/internal/store"
	"github.com/harper/scsnip/internal/ui"
	"github.com/harper/scsnip/internal/wrap"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [id-prefix]",
	Short: "Play a snippet",
	Long: `Wrap a snippet's code for evaluation and send it to sclang.

Use --code to play ad-hoc code or --file to play a file without storing it.
sclang must be running the receiver printed by "scsnip setup".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codeFlag, _ := cmd.Flags().GetString("code")
		fileFlag, _ := cmd.Flags().GetString("file")
		printFlag, _ := cmd.Flags().GetBool("print")

		var code, label string
		switch {
		case len(args) == 1:
			snippet, err := store.Find(snippetStore, args[0])
			if err != nil {
				return fmt.Errorf("failed to get snippet: %w", err)
			}
			code, label = snippet.Code, fmt.Sprintf("%q", snippet.Name)
		case codeFlag != "":
			code, label = codeFlag, "code"
		case fileFlag != "":
			data, err := os.ReadFile(fileFlag) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			code, label = string(data), fileFlag
		default:
			return fmt.Errorf("nothing to play: give a snippet id, --code, or --file")
		}

		wrapped := wrap.Wrap(code)
		if printFlag {
			fmt.Println(wrapped)
		}

		d, err := newDispatcher()
		if err != nil {
			return err
		}
		if err := d.Play(wrapped); err != nil {
			return fmt.Errorf("failed to play: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Sent %s to %s", label, d.Config().Addr())))
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop all sound",
	Long:  `Ask sclang to free every running node (CmdPeriod).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDispatcher()
		if err != nil {
			return err
		}
		if err := d.Stop(); err != nil {
			return fmt.Errorf("failed to stop: %w", err)
		}

		fmt.Println(ui.Success("Sent stop"))
		return nil
	},
}

func init() {
	playCmd.Flags().String("code", "", "play inline code")
	playCmd.Flags().String("file", "", "play code from a file")
	playCmd.Flags().BoolP("print", "p", false, "print the wrapped code before sending")
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(stopCmd)
}
