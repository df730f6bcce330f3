package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/tables"
)

var headersCmd = &cobra.Command{
	Use:   "headers <file>",
	Short: "List the header rows that open tables",
	Long: `Headers locates the tables on each page without rebuilding them and
prints one line per table: title, bottom and top edge.`,
	Args: cobra.ExactArgs(1),
	RunE: runHeaders,
}

func init() {
	rootCmd.AddCommand(headersCmd)
}

func runHeaders(cmd *cobra.Command, args []string) error {
	ext, err := newExtractor(args[0])
	if err != nil {
		return err
	}
	s, err := loadSettings()
	if err != nil {
		return err
	}

	doc, warnings, err := ext.Document()
	printWarnings(warnings)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range doc.Pages {
		found, err := tables.Locate(tables.Prepare(p, s), s)
		if errors.Is(err, model.ErrNoHeaderFound) {
			continue
		}
		if err != nil {
			return err
		}
		for _, t := range found {
			fmt.Fprintf(out, "page %d: %s [%s]\n", p.Number, t, labels(t.Header))
		}
	}
	return nil
}

func labels(h *tables.Header) string {
	var out []string
	for _, w := range h.Labels.Items() {
		out = append(out, w.Text)
	}
	return strings.Join(out, " ")
}
