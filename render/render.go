// Package render writes recovered tables in the supported output formats
// and draws debug plots of pages.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/tables"
)

// Renderer converts tables into a final output format.
type Renderer interface {
	Render(found []*tables.Table) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".csv").
	Extension() string
}

var renderers = map[string]func() Renderer{
	"json":     func() Renderer { return NewJSONRenderer() },
	"yaml":     func() Renderer { return NewYAMLRenderer() },
	"csv":      func() Renderer { return NewCSVRenderer() },
	"markdown": func() Renderer { return NewMarkdownRenderer() },
	"html":     func() Renderer { return NewHTMLRenderer() },
}

// Select returns the renderer for a format name. "md" and "yml" are
// accepted as aliases.
func Select(name string) (Renderer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "md":
		name = "markdown"
	case "yml":
		name = "yaml"
	}
	if f, ok := renderers[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown output format %q (want one of %s)", name, strings.Join(Formats(), ", "))
}

// Formats returns the supported format names, sorted
func Formats() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// tableDoc is the structured form shared by the JSON and YAML renderers
type tableDoc struct {
	Page   int        `json:"page" yaml:"page"`
	Title  string     `json:"title" yaml:"title"`
	Y0     float64    `json:"y0" yaml:"y0"`
	Y1     float64    `json:"y1" yaml:"y1"`
	Spokes []spokeDoc `json:"spokes" yaml:"spokes"`
	Rows   [][]string `json:"rows" yaml:"rows"`
}

type spokeDoc struct {
	Orientation string   `json:"orientation" yaml:"orientation"`
	Labels      []string `json:"labels" yaml:"labels,flow"`
	Value       float64  `json:"value" yaml:"value"`
	Cells       []string `json:"cells" yaml:"cells,flow"`
}

func documents(found []*tables.Table) []tableDoc {
	docs := make([]tableDoc, 0, len(found))
	for _, t := range found {
		d := tableDoc{
			Page:   t.Page,
			Title:  t.Title,
			Y0:     t.Box.Y0,
			Y1:     t.Box.Y1,
			Spokes: []spokeDoc{},
			Rows:   t.Matrix().Strings(),
		}
		if t.Spokes != nil {
			for _, s := range t.Spokes.Items() {
				sd := spokeDoc{
					Orientation: orientationName(s),
					Labels:      s.Path(),
					Value:       s.Value,
					Cells:       []string{},
				}
				for _, w := range s.Cells() {
					sd.Cells = append(sd.Cells, w.Text)
				}
				d.Spokes = append(d.Spokes, sd)
			}
		}
		docs = append(docs, d)
	}
	return docs
}

func orientationName(s *tables.Spoke) string {
	if s.Orientation == model.Vertical {
		return "vertical"
	}
	return "horizontal"
}

// caption is the heading used for a table in the text formats
func caption(t *tables.Table) string {
	return fmt.Sprintf("%s (page %d)", t.Title, t.Page)
}
