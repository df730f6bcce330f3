package render

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/tsawler/gravy/tables"
)

// CSVRenderer writes each table's matrix as CSV. Tables are preceded by a
// caption record and separated by an empty record.
type CSVRenderer struct{}

// NewCSVRenderer creates a CSVRenderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// Render writes the tables.
func (r *CSVRenderer) Render(found []*tables.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for i, t := range found {
		if i > 0 {
			if err := w.Write([]string{""}); err != nil {
				return nil, fmt.Errorf("writing CSV: %w", err)
			}
		}
		if err := w.Write([]string{caption(t)}); err != nil {
			return nil, fmt.Errorf("writing CSV: %w", err)
		}
		if err := w.WriteAll(t.Matrix().Strings()); err != nil {
			return nil, fmt.Errorf("writing CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("writing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for CSV output.
func (r *CSVRenderer) Extension() string {
	return ".csv"
}
