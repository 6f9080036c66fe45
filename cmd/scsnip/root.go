// ABOUTME: Root command and shared state for the scsnip CLI.
// ABOUTME: Resolves the app directory, loads config, and opens the snippet store.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harper/scsnip/internal/apperror"
	"github.com/harper/scsnip/internal/config"
	"github.com/harper/scsnip/internal/dispatch"
	"github.com/harper/scsnip/internal/paths"
	"github.com/harper/scsnip/internal/store"
	"github.com/harper/scsnip/internal/ui"
	"github.com/spf13/cobra"
)

var (
	homeFlag    string
	verboseFlag bool

	appRoot      string
	appConfig    *config.Config
	snippetStore *store.FileStore
	logger       *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "scsnip",
	Short: "SuperCollider snippet manager",
	Long: `Store, organize, and play SuperCollider code snippets.

Snippets live as JSON files under ~/.supercollider-snippet-manager/data,
one folder per category. Playing a snippet sends it over OSC to sclang,
which must have evaluated the code printed by "scsnip setup".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(verboseFlag)

		if homeFlag != "" {
			appRoot = paths.AppRootFor(homeFlag)
		} else {
			root, err := paths.AppRoot()
			if err != nil {
				return fmt.Errorf("failed to resolve app directory: %w", err)
			}
			appRoot = root
		}

		cfg, err := config.Load(paths.ConfigFileFor(appRoot))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		appConfig = cfg

		st, err := store.NewFileStore(paths.DataDirFor(appRoot), store.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		snippetStore = st

		logger.Debug("ready", "root", appRoot, "osc", appConfig.Dispatch().Addr())
		return nil
	},
}

func newLogger(verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(os.Stderr, log.Options{
		Level:  level,
		Prefix: "scsnip",
	})
	return slog.New(handler)
}

// newDispatcher builds a dispatcher from the loaded config.
func newDispatcher() (*dispatch.Dispatcher, error) {
	d, err := dispatch.New(appConfig.Dispatch(), logger)
	if err != nil {
		return nil, fmt.Errorf("invalid OSC settings: %w", err)
	}
	return d, nil
}

func Execute() error {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		if apperror.Is(err, apperror.ErrNetwork) {
			fmt.Fprintln(os.Stderr, `Is sclang running? Evaluate the output of "scsnip setup" in it first.`)
		}
		return err
	}
	return nil
}

// confirm asks a yes/no question on stdin and defaults to no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	var response string
	_, _ = fmt.Scanln(&response)
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func init() {
	rootCmd.PersistentFlags().StringVar(&homeFlag, "home", "", "home directory to keep app data under (default: your home)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "debug logging on stderr")
}
