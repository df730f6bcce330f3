package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/gravy"
	"github.com/tsawler/gravy/internal/logging"
	"github.com/tsawler/gravy/tables"
)

// Persistent flag variables.
var (
	flagVerbose  bool
	flagPages    pageList
	flagSettings string
)

var rootCmd = &cobra.Command{
	Use:   "gravy",
	Short: "gravy: recover tables from financial documents",
	Long: `gravy finds tables by their header rows, such as a row of fiscal years,
and rebuilds them as column and row spokes.

Input is a PDF or a YAML/JSON page dump of positioned words and lines.

Usage:
  gravy extract <file> [flags]
  gravy headers <file>
  gravy plot <file> --out plot.pdf
  gravy segment <file>
  gravy dump <file> --format yaml`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().Var(&flagPages, "pages", "Pages to read, e.g. 1,3-4 (default: all)")
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "", "YAML settings file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSettings returns the settings file's contents on top of the defaults,
// or the defaults when no file is given.
func loadSettings() (tables.Settings, error) {
	if flagSettings == "" {
		return tables.DefaultSettings(), nil
	}
	return tables.LoadSettings(flagSettings)
}

// newExtractor opens path with the persistent page and settings flags.
func newExtractor(path string) (*gravy.Extractor, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return gravy.Open(path).Pages(flagPages...).Settings(s), nil
}

func printWarnings(warnings []gravy.Warning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}
