// ABOUTME: Setup command that prints the sclang receiver code.
// ABOUTME: Evaluate its output once in SuperCollider before playing snippets.

package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/harper/scsnip/internal/dispatch"
	"github.com/harper/scsnip/internal/ui"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Print the SuperCollider setup code",
	Long: `Print the sclang code that installs the /snippet/play and /snippet/stop
receivers. Paste it into the SuperCollider IDE and evaluate it once per
session. With --write the code is saved to a file instead, and with --run
it is handed to the sclang binary from the config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		writeFlag, _ := cmd.Flags().GetString("write")
		runFlag, _ := cmd.Flags().GetBool("run")

		if writeFlag == "" && !runFlag {
			fmt.Print(dispatch.SetupCode + "\n")
			return nil
		}

		target := writeFlag
		if target == "" {
			f, err := os.CreateTemp("", "scsnip-setup-*.scd")
			if err != nil {
				return fmt.Errorf("failed to create temp file: %w", err)
			}
			target = f.Name()
			_ = f.Close()
			defer func() {
				_ = os.Remove(target) // Best-effort cleanup
			}()
		}
		if err := os.WriteFile(target, []byte(dispatch.SetupCode+"\n"), 0600); err != nil {
			return fmt.Errorf("failed to write setup code: %w", err)
		}

		if !runFlag {
			fmt.Println(ui.Success(fmt.Sprintf("Wrote setup code to %s", target)))
			return nil
		}

		sclang := appConfig.SclangPath
		if strings.TrimSpace(sclang) == "" {
			sclang = "sclang"
		}
		run := exec.Command(sclang, target) //nolint:gosec // Launching the configured interpreter is expected CLI behavior
		run.Stdin = os.Stdin
		run.Stdout = os.Stdout
		run.Stderr = os.Stderr
		if err := run.Run(); err != nil {
			return fmt.Errorf("failed to run sclang: %w", err)
		}
		return nil
	},
}

func init() {
	setupCmd.Flags().StringP("write", "w", "", "write the setup code to this file")
	setupCmd.Flags().Bool("run", false, "start sclang with the setup code")
	rootCmd.AddCommand(setupCmd)
}
