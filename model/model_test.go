package model

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// ============================================================================
// Box Tests
// ============================================================================

func TestNewBox(t *testing.T) {
	b := NewBox(50, 10, 70, 20)
	want := Box{X0: 10, X1: 50, Y0: 20, Y1: 70}
	if b != want {
		t.Errorf("NewBox() = %+v, want %+v", b, want)
	}
}

func TestBoxDerived(t *testing.T) {
	b := Box{X0: 10, X1: 30, Y0: 100, Y1: 140}

	if got := b.MidX(); got != 20 {
		t.Errorf("MidX() = %v, want 20", got)
	}
	if got := b.MidY(); got != 120 {
		t.Errorf("MidY() = %v, want 120", got)
	}
	if got := b.Width(); got != 20 {
		t.Errorf("Width() = %v, want 20", got)
	}
	if got := b.Height(); got != 40 {
		t.Errorf("Height() = %v, want 40", got)
	}
	if got := b.Orientation(); got != Vertical {
		t.Errorf("Orientation() = %v, want v", got)
	}
}

func TestBoxOrientation(t *testing.T) {
	tests := []struct {
		name string
		box  Box
		want Orientation
	}{
		{"wide", Box{0, 10, 0, 2}, Horizontal},
		{"tall", Box{0, 2, 0, 10}, Vertical},
		{"square", Box{0, 5, 0, 5}, Horizontal},
		{"horizontal line", Box{0, 10, 5, 5}, Horizontal},
		{"vertical line", Box{5, 5, 0, 10}, Vertical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Orientation(); got != tt.want {
				t.Errorf("Orientation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxIntersects(t *testing.T) {
	rect := Box{X0: 100, X1: 200, Y0: 100, Y1: 200}

	tests := []struct {
		name string
		box  Box
		want bool
	}{
		{"inside", Box{120, 140, 120, 140}, true},
		{"overlapping left edge", Box{90, 110, 120, 140}, true},
		{"touching left edge", Box{80, 100, 120, 140}, false},
		{"touching right edge", Box{200, 220, 120, 140}, false},
		{"touching top", Box{120, 140, 200, 210}, false},
		{"below", Box{120, 140, 50, 60}, false},
		{"horizontal rule inside", Box{90, 210, 150, 150}, true},
		{"enclosing", Box{0, 300, 0, 300}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Intersects(rect); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxUnionAndShift(t *testing.T) {
	a := Box{0, 10, 0, 10}
	b := Box{5, 20, -5, 8}

	if got, want := a.Union(b), (Box{0, 20, -5, 10}); got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}

	shifted := a.Shift(3, -4)
	if shifted != (Box{3, 13, -4, 6}) {
		t.Errorf("Shift() = %+v", shifted)
	}
	if back := shifted.Shift(-3, 4); back != a {
		t.Errorf("Shift round trip = %+v, want %+v", back, a)
	}
}

func TestBoxValid(t *testing.T) {
	tests := []struct {
		name string
		box  Box
		want bool
	}{
		{"normal", Box{0, 1, 0, 1}, true},
		{"zero size", Box{1, 1, 1, 1}, true},
		{"inverted x", Box{2, 1, 0, 1}, false},
		{"inverted y", Box{0, 1, 2, 1}, false},
		{"nan", Box{math.NaN(), 1, 0, 1}, false},
		{"inf", Box{0, math.Inf(1), 0, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxSquash(t *testing.T) {
	v := Box{10, 12, 0, 100}.Squash(Vertical)
	if v.X0 != 11 || v.X1 != 11 || v.Y0 != 0 || v.Y1 != 100 {
		t.Errorf("Squash(Vertical) = %+v", v)
	}

	h := Box{0, 100, 10, 11}.Squash(Horizontal)
	if h.Y0 != 10.5 || h.Y1 != 10.5 || h.X1 != 100 {
		t.Errorf("Squash(Horizontal) = %+v", h)
	}
}

// ============================================================================
// Element Tests
// ============================================================================

func TestWordTranslate(t *testing.T) {
	w := NewWord(Box{0, 10, 0, 10}, "FY20", "Arial_10")
	var e Element = w

	e.Translate(5, 5)
	if w.X0 != 5 || w.Y1 != 15 {
		t.Errorf("Translate() moved word to %+v", w.Box)
	}
	if e.Kind() != KindWord {
		t.Errorf("Kind() = %v, want Word", e.Kind())
	}
}

func TestTokenWord(t *testing.T) {
	glyphs := []Glyph{
		{Box: Box{0, 4, 0, 10}, Char: " ", Font: "ABCDEF+Arial", Size: 10},
		{Box: Box{4, 10, 0, 10}, Char: "F", Font: "ABCDEF+Arial", Size: 10},
		{Box: Box{10, 16, 0, 10}, Char: "Y", Font: "ABCDEF+Arial", Size: 10},
		{Box: Box{16, 22, 0, 10}, Char: "2", Font: "ABCDEF+Arial", Size: 10},
		{Box: Box{22, 28, 0, 10}, Char: "0", Font: "ABCDEF+Arial", Size: 10},
		{Box: Box{28, 32, 0, 10}, Char: " ", Font: "ABCDEF+Arial", Size: 10},
	}

	tok := NewToken(glyphs...)
	tok.Trim()

	if tok.Len() != 4 {
		t.Fatalf("Len() after Trim = %d, want 4", tok.Len())
	}

	w := tok.Word()
	if w.Text != "FY20" {
		t.Errorf("Text = %q, want FY20", w.Text)
	}
	if w.X0 != 4 || w.X1 != 28 {
		t.Errorf("Box = %+v, want x 4..28", w.Box)
	}
	if w.Font != "CAPSArial_10" && w.Font != "Arial_10" {
		t.Errorf("Font = %q", w.Font)
	}
}

func TestTokenFontMajority(t *testing.T) {
	tok := NewToken(
		Glyph{Box: Box{0, 5, 0, 10}, Char: "a", Font: "Bold", Size: 10},
		Glyph{Box: Box{5, 10, 0, 10}, Char: "b", Font: "Regular", Size: 10},
		Glyph{Box: Box{10, 15, 0, 10}, Char: "c", Font: "Regular", Size: 10},
	)
	if got := tok.Font(); got != "Regular_10" {
		t.Errorf("Font() = %q, want Regular_10", got)
	}
}

// ============================================================================
// Page Tests
// ============================================================================

func TestPageSanitize(t *testing.T) {
	p := NewPage(1, 612, 792)
	p.AddWord(NewWord(Box{0, 10, 0, 10}, "ok", ""))
	p.AddWord(NewWord(Box{10, 0, 0, 10}, "inverted", ""))
	p.AddWord(NewWord(Box{0, 10, 0, 10}, "", ""))
	p.AddLine(NewLine(Box{0, 100, 50, 50}))
	p.AddLine(NewLine(Box{math.NaN(), 1, 0, 1}))

	errs := p.Sanitize()
	if len(errs) != 3 {
		t.Fatalf("Sanitize() returned %d errors, want 3", len(errs))
	}
	for _, err := range errs {
		if !errors.Is(err, ErrMalformedElement) {
			t.Errorf("error %v does not wrap ErrMalformedElement", err)
		}
	}
	if len(p.Words) != 1 || p.Words[0].Text != "ok" {
		t.Errorf("Words after Sanitize = %v", p.Words)
	}
	if len(p.Lines) != 1 {
		t.Errorf("Lines after Sanitize = %d, want 1", len(p.Lines))
	}
}

func TestPageCloneSanitize(t *testing.T) {
	p := NewPage(1, 612, 792)
	p.AddWord(NewWord(Box{0, 10, 0, 10}, "ok", ""))
	p.AddWord(nil)
	p.AddLine(nil)

	c := p.Clone()
	if errs := c.Sanitize(); len(errs) != 2 {
		t.Fatalf("Sanitize() on clone returned %d errors, want 2", len(errs))
	}
	if len(c.Words) != 1 || len(p.Words) != 2 || len(p.Lines) != 1 {
		t.Errorf("clone words = %d, source words = %d, source lines = %d", len(c.Words), len(p.Words), len(p.Lines))
	}
}

func TestNormalizeLines(t *testing.T) {
	rects := []Box{
		{X0: 100, X1: 101, Y0: 0, Y1: 200},  // thin vertical
		{X0: 0, X1: 300, Y0: 50, Y1: 52},    // thin horizontal
		{X0: 0, X1: 100, Y0: 100, Y1: 150},  // filled shape
		{X0: 0, X1: 300, Y0: 10, Y1: 10.5},  // thin horizontal, lower
	}

	lines := NormalizeLines(rects, 3)
	if len(lines) != 3 {
		t.Fatalf("NormalizeLines() = %d lines, want 3", len(lines))
	}
	if lines[0].Y0 != 0 || lines[0].X0 != 100.5 || lines[0].X1 != 100.5 {
		t.Errorf("first line = %+v, want squashed vertical at x=100.5", lines[0].Box)
	}
	if lines[1].Y0 != 10.25 || lines[1].Y1 != 10.25 {
		t.Errorf("second line = %+v, want squashed horizontal at y=10.25", lines[1].Box)
	}
	if lines[2].Orientation() != Horizontal {
		t.Errorf("third line orientation = %v", lines[2].Orientation())
	}
}

func TestConcat(t *testing.T) {
	p1 := NewPage(1, 600, 800)
	p1.AddWord(NewWord(Box{0, 10, 700, 710}, "top", ""))
	p2 := NewPage(2, 600, 800)
	p2.AddWord(NewWord(Box{0, 10, 700, 710}, "second", ""))

	out := Concat([]*Page{p1, p2})
	if out.Height != 1600 {
		t.Errorf("Height = %v, want 1600", out.Height)
	}
	if out.Words[0].Y0 != 1500 {
		t.Errorf("first page word Y0 = %v, want 1500", out.Words[0].Y0)
	}
	if out.Words[1].Y0 != 700 {
		t.Errorf("second page word Y0 = %v, want 700", out.Words[1].Y0)
	}
	if p1.Words[0].Y0 != 700 {
		t.Errorf("Concat mutated source page")
	}
}

func TestDocumentSelect(t *testing.T) {
	d := NewDocument("test")
	for i := 0; i < 4; i++ {
		d.AddPage(NewPage(0, 100, 100))
	}

	if got := d.Select(); len(got) != 4 {
		t.Errorf("Select() = %d pages, want 4", len(got))
	}
	got := d.Select(4, 2)
	if len(got) != 2 || got[0].Number != 2 || got[1].Number != 4 {
		t.Errorf("Select(4, 2) returned wrong pages")
	}
	if d.GetPage(3).Number != 3 {
		t.Errorf("GetPage(3) wrong page")
	}
}

// ============================================================================
// Matrix Tests
// ============================================================================

func TestMatrixToMarkdown(t *testing.T) {
	m := NewMatrix(2, 2)
	m.SetCell(0, 0, Cell{Text: "", IsHeader: true})
	m.SetCell(0, 1, Cell{Text: "FY20", IsHeader: true})
	m.SetCell(1, 0, Cell{Text: "Revenue"})
	m.SetCell(1, 1, Cell{Text: "1|2"})

	md := m.ToMarkdown()
	if !strings.Contains(md, "| FY20 |") {
		t.Errorf("markdown missing header cell:\n%s", md)
	}
	if !strings.Contains(md, "|---|---|") {
		t.Errorf("markdown missing separator:\n%s", md)
	}
	if !strings.Contains(md, `1\|2`) {
		t.Errorf("pipe not escaped:\n%s", md)
	}
}

func TestMatrixSetCellOutOfBounds(t *testing.T) {
	m := NewMatrix(1, 1)
	if err := m.SetCell(2, 0, Cell{}); err == nil {
		t.Error("SetCell(2, 0) should fail")
	}
	if m.GetCell(0, 5) != nil {
		t.Error("GetCell(0, 5) should be nil")
	}
}
