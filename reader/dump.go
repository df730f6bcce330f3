package reader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/gravy/format"
	"github.com/tsawler/gravy/model"
)

// pageDump is the serialised form of a page. Coordinates are pointers so a
// missing edge can be told apart from zero.
type pageDump struct {
	Number int        `yaml:"number" json:"number"`
	Width  float64    `yaml:"width" json:"width"`
	Height float64    `yaml:"height" json:"height"`
	Words  []wordDump `yaml:"words" json:"words"`
	Lines  []boxDump  `yaml:"lines,omitempty" json:"lines,omitempty"`
}

type boxDump struct {
	X0 *float64 `yaml:"x0" json:"x0"`
	X1 *float64 `yaml:"x1" json:"x1"`
	Y0 *float64 `yaml:"y0" json:"y0"`
	Y1 *float64 `yaml:"y1" json:"y1"`
}

type wordDump struct {
	boxDump `yaml:",inline"`
	Text    string `yaml:"text" json:"text"`
	Font    string `yaml:"font,omitempty" json:"font,omitempty"`
}

// box returns the dumped box; a missing edge is NaN, which fails
// model.Box.Valid and gets the element dropped by Page.Sanitize.
func (b boxDump) box() model.Box {
	edge := func(v *float64) float64 {
		if v == nil {
			return math.NaN()
		}
		return *v
	}
	return model.Box{X0: edge(b.X0), X1: edge(b.X1), Y0: edge(b.Y0), Y1: edge(b.Y1)}
}

func dumpBox(b model.Box) boxDump {
	x0, x1, y0, y1 := b.X0, b.X1, b.Y0, b.Y1
	return boxDump{X0: &x0, X1: &x1, Y0: &y0, Y1: &y1}
}

// ReadDump decodes a YAML or JSON page dump: a list of pages, each with its
// words and lines. Elements are taken as given; call Page.Sanitize to drop
// malformed ones.
func ReadDump(r io.Reader, f format.Format, source string) (*model.Document, error) {
	var dumps []pageDump
	switch f {
	case format.YAML:
		if err := yaml.NewDecoder(r).Decode(&dumps); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode YAML dump: %w", err)
		}
	case format.JSON:
		if err := json.NewDecoder(r).Decode(&dumps); err != nil {
			return nil, fmt.Errorf("failed to decode JSON dump: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dump format %v", f)
	}

	doc := model.NewDocument(source)
	for _, d := range dumps {
		width, height := d.Width, d.Height
		if width <= 0 || height <= 0 {
			width, height = letterWidth, letterHeight
		}
		page := model.NewPage(d.Number, width, height)
		for _, w := range d.Words {
			page.AddWord(model.NewWord(w.box(), w.Text, w.Font))
		}
		for _, l := range d.Lines {
			page.AddLine(model.NewLine(l.box()))
		}
		doc.AddPage(page)
	}
	return doc, nil
}

// WriteDump encodes pages as a YAML or JSON dump that ReadDump accepts
func WriteDump(w io.Writer, f format.Format, pages []*model.Page) error {
	dumps := make([]pageDump, 0, len(pages))
	for _, p := range pages {
		d := pageDump{Number: p.Number, Width: p.Width, Height: p.Height, Words: []wordDump{}}
		for _, word := range p.Words {
			d.Words = append(d.Words, wordDump{boxDump: dumpBox(word.Box), Text: word.Text, Font: word.Font})
		}
		for _, l := range p.Lines {
			d.Lines = append(d.Lines, dumpBox(l.Box))
		}
		dumps = append(dumps, d)
	}

	switch f {
	case format.YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dumps); err != nil {
			return fmt.Errorf("failed to encode YAML dump: %w", err)
		}
		return enc.Close()
	case format.JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dumps)
	default:
		return fmt.Errorf("unsupported dump format %v", f)
	}
}
