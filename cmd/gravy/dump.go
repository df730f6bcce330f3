package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/gravy/format"
	"github.com/tsawler/gravy/reader"
)

var (
	flagDumpFormat string
	flagDumpOut    string
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Write the positioned words and lines of a document as YAML or JSON",
	Long: `Dump reads the selected pages and writes them as a page dump, the input
format gravy accepts besides PDF. Dumps can be edited by hand to build test
cases.

Examples:
  gravy dump report.pdf --pages 2 > page2.yaml
  gravy dump report.pdf --format json --out pages.json`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().StringVarP(&flagDumpFormat, "format", "f", "yaml", "Dump format (yaml or json)")
	dumpCmd.Flags().StringVarP(&flagDumpOut, "out", "o", "", "Output file (default: stdout)")
}

func runDump(cmd *cobra.Command, args []string) error {
	var kind format.Format
	switch flagDumpFormat {
	case "yaml", "yml":
		kind = format.YAML
	case "json":
		kind = format.JSON
	default:
		return fmt.Errorf("unknown dump format %q (want yaml or json)", flagDumpFormat)
	}

	ext, err := newExtractor(args[0])
	if err != nil {
		return err
	}
	doc, warnings, err := ext.Document()
	printWarnings(warnings)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if flagDumpOut != "" {
		f, err := os.Create(flagDumpOut)
		if err != nil {
			return fmt.Errorf("creating dump: %w", err)
		}
		defer f.Close()
		w = f
	}
	return reader.WriteDump(w, kind, doc.Pages)
}
