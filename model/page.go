package model

import (
	"fmt"
	"sort"
)

// Page holds the positioned elements of a single page
type Page struct {
	Number int     // 1-indexed page number
	Width  float64 // Page width in points
	Height float64 // Page height in points
	Words  []*Word // Word tokens in reading order
	Lines  []*Line // Rule lines, thin rectangles already squashed
}

// NewPage creates a new page with given dimensions
func NewPage(number int, width, height float64) *Page {
	return &Page{
		Number: number,
		Width:  width,
		Height: height,
		Words:  make([]*Word, 0),
		Lines:  make([]*Line, 0),
	}
}

// Box returns the page rectangle
func (p *Page) Box() Box {
	return Box{X0: 0, X1: p.Width, Y0: 0, Y1: p.Height}
}

// AddWord appends a word token
func (p *Page) AddWord(w *Word) {
	p.Words = append(p.Words, w)
}

// AddLine appends a rule line
func (p *Page) AddLine(l *Line) {
	p.Lines = append(p.Lines, l)
}

// Sanitize drops elements with invalid boxes or empty text and returns one
// error per dropped element, each wrapping ErrMalformedElement.
func (p *Page) Sanitize() []error {
	var errs []error

	words := p.Words[:0]
	for i, w := range p.Words {
		if w == nil || !w.Box.Valid() || w.Text == "" {
			errs = append(errs, fmt.Errorf("page %d word %d: %w", p.Number, i, ErrMalformedElement))
			continue
		}
		words = append(words, w)
	}
	p.Words = words

	lines := p.Lines[:0]
	for i, l := range p.Lines {
		if l == nil || !l.Box.Valid() {
			errs = append(errs, fmt.Errorf("page %d line %d: %w", p.Number, i, ErrMalformedElement))
			continue
		}
		lines = append(lines, l)
	}
	p.Lines = lines

	return errs
}

// Clone returns a deep copy so callers may mutate words without touching
// the source page
func (p *Page) Clone() *Page {
	out := NewPage(p.Number, p.Width, p.Height)
	for _, w := range p.Words {
		if w != nil {
			w = w.Clone()
		}
		out.Words = append(out.Words, w)
	}
	for _, l := range p.Lines {
		if l != nil {
			c := *l
			l = &c
		}
		out.Lines = append(out.Lines, l)
	}
	return out
}

// Translate shifts every element on the page
func (p *Page) Translate(dx, dy float64) {
	for _, w := range p.Words {
		w.Translate(dx, dy)
	}
	for _, l := range p.Lines {
		l.Translate(dx, dy)
	}
}

// NormalizeLines converts rectangles into rule lines. Rectangles thinner
// than eps along one axis are squashed onto their midline; anything thicker
// is a filled shape, not a rule, and is dropped. Result is sorted by Y0.
func NormalizeLines(rects []Box, eps float64) []*Line {
	lines := make([]*Line, 0, len(rects))
	for _, r := range rects {
		switch {
		case r.Width() < eps:
			lines = append(lines, NewLine(r.Squash(Vertical)))
		case r.Height() < eps:
			lines = append(lines, NewLine(r.Squash(Horizontal)))
		}
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Y0 < lines[j].Y0
	})
	return lines
}

// SortWords orders words top to bottom, then left to right
func SortWords(words []*Word) {
	sort.SliceStable(words, func(i, j int) bool {
		if words[i].Y1 != words[j].Y1 {
			return words[i].Y1 > words[j].Y1
		}
		return words[i].X0 < words[j].X0
	})
}
