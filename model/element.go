package model

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Kind tags the closed set of page element variants
type Kind int

const (
	KindWord Kind = iota
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindWord:
		return "Word"
	case KindLine:
		return "Line"
	default:
		return "Unknown"
	}
}

// Element is the interface shared by Word and Line. Only this package
// implements it.
type Element interface {
	Kind() Kind
	Bounds() Box
	Translate(dx, dy float64)
	element()
}

// Word is a positioned text token with a single dominant font tag
type Word struct {
	Box
	Text string
	Font string
}

// NewWord creates a word token
func NewWord(box Box, text, font string) *Word {
	return &Word{Box: box, Text: text, Font: font}
}

func (w *Word) Kind() Kind  { return KindWord }
func (w *Word) Bounds() Box { return w.Box }
func (w *Word) element()    {}

// Translate shifts the word by (dx, dy)
func (w *Word) Translate(dx, dy float64) {
	w.Box = w.Box.Shift(dx, dy)
}

// SetText replaces the token text, e.g. after whitespace removal
func (w *Word) SetText(s string) {
	w.Text = s
}

// Clone returns an independent copy
func (w *Word) Clone() *Word {
	c := *w
	return &c
}

func (w *Word) String() string {
	return w.Text
}

// Line represents a rule line; thin rectangles are squashed into lines
// before use, so one of its dimensions is usually zero.
type Line struct {
	Box
}

// NewLine creates a line from its box
func NewLine(box Box) *Line {
	return &Line{Box: box}
}

func (l *Line) Kind() Kind  { return KindLine }
func (l *Line) Bounds() Box { return l.Box }
func (l *Line) element()    {}

// Translate shifts the line by (dx, dy)
func (l *Line) Translate(dx, dy float64) {
	l.Box = l.Box.Shift(dx, dy)
}

// Squash collapses the line along the given axis
func (l *Line) Squash(axis Orientation) {
	l.Box = l.Box.Squash(axis)
}

// Glyph is a single positioned character as produced by a PDF decoder
type Glyph struct {
	Box
	Char string
	Font string
	Size float64
}

// IsSpace reports whether the glyph carries only whitespace
func (g Glyph) IsSpace() bool {
	return strings.TrimSpace(g.Char) == ""
}

// Tag returns the font identity of the glyph: a CAPS prefix for upper-case
// glyphs, the font name without subset prefix, and the size rounded to 2pt.
func (g Glyph) Tag() string {
	name := g.Font
	if i := strings.Index(name, "+"); i >= 0 {
		name = name[i+1:]
	}
	caps := ""
	if isUpper(g.Char) {
		caps = "CAPS"
	}
	size := g.Size
	if size == 0 {
		size = g.Height()
	}
	return caps + name + "_" + strconv.Itoa(roundTwo(size))
}

// Token is an owned, ordered run of glyphs with its own cached bounding box
type Token struct {
	glyphs []Glyph
	box    Box
}

// NewToken creates a token from glyphs, copying them
func NewToken(glyphs ...Glyph) *Token {
	t := &Token{glyphs: append([]Glyph(nil), glyphs...)}
	t.reset()
	return t
}

func (t *Token) reset() {
	t.box = Box{}
	for i, g := range t.glyphs {
		if i == 0 {
			t.box = g.Box
			continue
		}
		t.box = t.box.Union(g.Box)
	}
}

// Append adds glyphs and refreshes the bounding box
func (t *Token) Append(glyphs ...Glyph) {
	t.glyphs = append(t.glyphs, glyphs...)
	t.reset()
}

// Glyphs returns a copy of the glyphs
func (t *Token) Glyphs() []Glyph {
	return append([]Glyph(nil), t.glyphs...)
}

// Len returns the number of glyphs
func (t *Token) Len() int {
	return len(t.glyphs)
}

func (t *Token) Bounds() Box {
	return t.box
}

// Text concatenates the glyph characters
func (t *Token) Text() string {
	var sb strings.Builder
	for _, g := range t.glyphs {
		sb.WriteString(g.Char)
	}
	return sb.String()
}

// Trim drops leading and trailing whitespace glyphs
func (t *Token) Trim() {
	start, end := 0, len(t.glyphs)
	for start < end && t.glyphs[start].IsSpace() {
		start++
	}
	for end > start && t.glyphs[end-1].IsSpace() {
		end--
	}
	t.glyphs = t.glyphs[start:end]
	t.reset()
}

// Font returns the most common glyph tag; ties go to the tag seen first.
func (t *Token) Font() string {
	counts := make(map[string]int)
	var order []string
	for _, g := range t.glyphs {
		if g.IsSpace() {
			continue
		}
		tag := g.Tag()
		if counts[tag] == 0 {
			order = append(order, tag)
		}
		counts[tag]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) == 0 {
		return ""
	}
	return order[0]
}

// Word converts the token into a word element
func (t *Token) Word() *Word {
	return NewWord(t.box, t.Text(), t.Font())
}

func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func roundTwo(x float64) int {
	return int((x+1)/2) * 2
}
