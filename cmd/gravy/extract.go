package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/gravy/render"
)

// Flag variables.
var (
	flagFormat      string
	flagWorkers     int
	flagPageTimeout time.Duration
	flagOutput      string
	flagConcat      bool
	flagKeepBanners bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Recover the tables in a document",
	Long: `Extract finds every table in the selected pages and writes them in the
chosen format.

Examples:
  gravy extract report.pdf
  gravy extract report.pdf --pages 3-5 --format csv --output tables.csv
  gravy extract pages.yaml --settings quarters.yaml --format json
  gravy extract report.pdf --workers 8 --page-timeout 5s`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&flagFormat, "format", "f", "markdown", fmt.Sprintf("Output format %v", render.Formats()))
	extractCmd.Flags().IntVar(&flagWorkers, "workers", 4, "Pages processed at once")
	extractCmd.Flags().DurationVar(&flagPageTimeout, "page-timeout", 0, "Time limit per page; slower pages are skipped (0: none)")
	extractCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default: stdout)")
	extractCmd.Flags().BoolVar(&flagConcat, "concat", false, "Stack the selected pages into one before extraction")
	extractCmd.Flags().BoolVar(&flagKeepBanners, "keep-banners", false, "Keep words set in large first-page banner fonts")
}

func runExtract(cmd *cobra.Command, args []string) error {
	renderer, err := render.Select(flagFormat)
	if err != nil {
		return err
	}

	ext, err := newExtractor(args[0])
	if err != nil {
		return err
	}
	ext = ext.Workers(flagWorkers).PageTimeout(flagPageTimeout)
	if flagConcat {
		ext = ext.Concat()
	}
	if flagKeepBanners {
		ext = ext.KeepBanners()
	}

	found, warnings, err := ext.Tables()
	printWarnings(warnings)
	if err != nil {
		return err
	}

	data, err := renderer.Render(found)
	if err != nil {
		return err
	}

	if flagOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(flagOutput, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Written: %s (%d tables)\n", flagOutput, len(found))
	return nil
}
