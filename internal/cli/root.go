package cli

import (
	"os"

	"draftkit/internal/config"
	"draftkit/internal/logging"

	"github.com/spf13/cobra"
)

// Version is the release version reported by serve and info.
const Version = "0.4.0"

var (
	flagColor   string
	flagQuiet   bool
	flagVerbose int
	flagChdir   string

	styler *Styler
)

var rootCmd = &cobra.Command{
	Use:   "draftkit",
	Short: "UI component catalog and page composition for TailwindPlus",
	Long: `Draftkit serves a TailwindPlus component catalog to coding agents over MCP
and composes pages from declarative patterns and aesthetic presets.

Quick Start:
  draftkit serve                  Start the MCP stdio server
  draftkit search "hero"          Search the component catalog
  draftkit get hero-split         Print a component's source
  draftkit generate index --pattern saas-landing
                                  Build a page recipe

Run 'draftkit auth' once to store a TailwindPlus session for fetching
component code that is not in the local cache.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagChdir != "" {
			if err := os.Chdir(flagChdir); err != nil {
				return err
			}
		}
		logging.GetDefault().SetVerbosity(flagVerbose, flagQuiet)
		styler = NewStyler(flagColor, os.Stdout)
		return nil
	},
}

// Execute runs the root command. Errors are printed by main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "color output (auto, always, never)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress log output below errors")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().StringVarP(&flagChdir, "chdir", "C", "", "change to directory before running")
}

// PrintFatal prints a top-level command error to stderr, keeping stdout
// clean for command output and the MCP transport.
func PrintFatal(err error) {
	NewStyler(flagColor, os.Stderr).PrintError(err.Error())
}

// loadPaths resolves the runtime data directory from config. Config load
// failures fall back to defaults so read-only commands keep working.
func loadPaths() (config.DataPaths, *config.Config) {
	cfg, err := config.Load()
	if err != nil {
		logging.Warn("Failed to load config, using defaults", "error", err)
		def := config.DefaultConfig()
		cfg = &def
	}
	return config.NewDataPaths(cfg), cfg
}
