package render

import (
	"strings"

	"github.com/tsawler/gravy/tables"
)

// MarkdownRenderer writes each table as a Markdown table under a heading.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render writes the tables.
func (r *MarkdownRenderer) Render(found []*tables.Table) ([]byte, error) {
	var sb strings.Builder
	for i, t := range found {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("## ")
		sb.WriteString(caption(t))
		sb.WriteString("\n\n")
		sb.WriteString(t.Matrix().ToMarkdown())
	}
	return []byte(sb.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
