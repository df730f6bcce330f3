// Package gravy recovers tables from documents whose pages are given as
// positioned words and rule lines. Tables are found from their header rows:
// a row whose words match the header pattern, such as fiscal years, opens
// a table, and every header label becomes a column spoke collecting the
// figures aligned below it. Row spokes are then built from the labels left
// of the figures.
//
// Basic usage:
//
//	found, warnings, err := gravy.Open("report.pdf").Tables()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", gravy.FormatWarnings(warnings))
//	}
//	for _, t := range found {
//	    fmt.Println(t)
//	}
//
// With options:
//
//	found, _, err := gravy.Open("report.pdf").
//	    Pages(3, 4).
//	    SettingsFile("settings.yaml").
//	    Workers(4).
//	    PageTimeout(5 * time.Second).
//	    Tables()
//
// Pages already in memory, for instance from another text extractor, are
// handled by FromPages or ExtractTables.
package gravy

import (
	"context"

	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/reader"
	"github.com/tsawler/gravy/tables"
)

// Open returns an Extractor for a PDF file or a YAML or JSON page dump.
// The file is read by the first terminal operation, such as Tables.
//
// Example:
//
//	found, warnings, err := gravy.Open("report.pdf").Tables()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened reader.Reader.
// The caller is responsible for closing the reader.
//
// Example:
//
//	r, err := reader.Open("report.pdf", reader.DefaultOptions())
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	found, warnings, err := gravy.FromReader(r).Pages(2).Tables()
func FromReader(r *reader.Reader) *Extractor {
	return &Extractor{
		reader:  r,
		options: defaultOptions(),
	}
}

// FromPages creates an Extractor over pages already in memory. Pages
// without a number are numbered in order.
//
// Example:
//
//	found, _, err := gravy.FromPages(page).Tables()
func FromPages(pages ...*model.Page) *Extractor {
	doc := model.NewDocument("")
	for _, p := range pages {
		doc.AddPage(p)
	}
	return &Extractor{
		doc:     doc,
		options: defaultOptions(),
	}
}

// ExtractTables finds the tables on one page. A page without a header row
// yields no tables and no error.
func ExtractTables(page *model.Page, settings tables.Settings) ([]*tables.Table, error) {
	return tables.Extract(context.Background(), page, settings)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := gravy.Must(gravy.Open("report.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTables wraps a call to Tables and panics if the error is non-nil.
// Warnings are discarded.
//
// Example:
//
//	found := gravy.MustTables(gravy.Open("report.pdf").Tables())
func MustTables[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
