// ABOUTME: Config command for viewing and changing settings.
// ABOUTME: Settings live in config.json next to the data directory.

package main

import (
	"fmt"

	"github.com/harper/scsnip/internal/config"
	"github.com/harper/scsnip/internal/paths"
	"github.com/harper/scsnip/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or change settings",
	Long: `View or change settings. Keys: osc_host, osc_port, sclang_path, editor.

SCSNIP_HOST, SCSNIP_PORT, SCSNIP_SCLANG, and SCSNIP_EDITOR override the file,
either from the environment or from a .env file in the app directory.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("config: %s\n", paths.ConfigFileFor(appRoot))
		fmt.Printf("data:   %s\n", snippetStore.DataDir())
		fmt.Print(ui.Separator())
		for _, key := range config.Keys {
			value, err := appConfig.Get(key)
			if err != nil {
				return err
			}
			if value == "" {
				value = "(unset)"
			}
			fmt.Printf("%-12s %s\n", key, value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := paths.ConfigFileFor(appRoot)

		cfg, err := config.LoadFile(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to set %s: %w", args[0], err)
		}
		if err := config.Save(path, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		value, _ := cfg.Get(args[0])
		fmt.Println(ui.Success(fmt.Sprintf("Set %s = %s", args[0], value)))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
