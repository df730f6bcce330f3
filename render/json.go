package render

import (
	"encoding/json"
	"fmt"

	"github.com/tsawler/gravy/tables"
)

// JSONRenderer writes tables as a JSON array with their spokes and matrix.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the tables.
func (r *JSONRenderer) Render(found []*tables.Table) ([]byte, error) {
	data, err := json.MarshalIndent(documents(found), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
