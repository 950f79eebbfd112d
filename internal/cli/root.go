// Package cli implements the conduit command-line interface.
//
// This package uses global variables to manage CLI state, which is the
// standard pattern for Cobra-based CLI applications. The globals are
// initialized in PersistentPreRunE and cleaned up in PersistentPostRun.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrz1836/conduit/internal/config"
)

// EnvConfig overrides the config file location.
const EnvConfig = "CONDUIT_CONFIG"

var (
	// Global flags
	configPath string
	verbose    bool

	// Global state initialized in PersistentPreRunE
	cfg    *config.Config
	logger *config.Logger
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "conduit",
	Short: "Multi-chain transaction orchestration",
	Long: `Conduit validates, signs and tracks outbound blockchain transactions
across EVM and Substrate chains.

Example:
  conduit chains list
  conduit chains show polkadot
  conduit accounts derive --mnemonic "..." --name main`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initGlobals()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initGlobals loads configuration and builds the logger.
func initGlobals() error {
	path := configPath
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = defaultConfigPath()
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err = config.NewLogger(level)
	if err != nil {
		logger = config.NopLogger()
	}

	return nil
}

// cleanup releases resources.
func cleanup() {
	if logger != nil {
		_ = logger.Sync()
	}
}

// defaultConfigPath returns $HOME/.conduit/config.yaml, falling back
// to a relative path when the home directory is unknown.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".conduit", "config.yaml")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(chainsCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(versionCmd)
}
