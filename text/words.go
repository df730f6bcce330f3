package text

import (
	"sort"
	"unicode"

	"github.com/tsawler/gravy/model"
)

// Options controls how glyphs are assembled into words
type Options struct {
	// Glyphs whose midpoints differ by less than this share of their height
	// sit on the same line.
	LineTolerance float64

	// A gap of this many font sizes ends a word. Words are phrases: single
	// spaces are kept, column gutters split.
	SplitGap float64

	// End a word where the font changes between letters or digits
	SplitFonts bool
}

// DefaultOptions returns the default assembly options
func DefaultOptions() Options {
	return Options{
		LineTolerance: 0.5,
		SplitGap:      1.0,
		SplitFonts:    true,
	}
}

// minFontRun is the number of glyphs a word keeps before a font change
// may split it
const minFontRun = 6

// Words assembles positioned glyphs into words, line by line from the top
// of the page, each line in its reading direction.
func Words(glyphs []model.Glyph, opts Options) []*model.Word {
	var out []*model.Word
	for _, line := range groupLines(glyphs, opts.LineTolerance) {
		dir := lineDirection(line)
		orderLine(line, dir)
		m := measureLine(line, dir)

		tok := model.NewToken(line[0])
		spaces := 0
		sinceFont := 1
		for i := 1; i < len(line); i++ {
			prev, g := line[i-1], line[i]
			gap := gapBetween(prev, g, dir)
			size := fontSize(prev)

			if g.IsSpace() {
				spaces++
			} else {
				spaces = 0
			}

			split := gap >= opts.SplitGap*size || spaces >= 4
			if !split && opts.SplitFonts && !g.IsSpace() && isAlnum(g.Char) && sinceFont > minFontRun {
				if last, ok := lastAlnum(tok); ok && last.Tag() != g.Tag() {
					split = true
				}
			}

			if split {
				out = appendToken(out, tok)
				tok = model.NewToken(g)
				spaces, sinceFont = 0, 1
				continue
			}

			if m.needsSpace(prev, g, gap) {
				tok.Append(spaceBetween(prev, g, dir))
			}
			tok.Append(g)
			sinceFont++
		}
		out = appendToken(out, tok)
	}
	return out
}

func appendToken(out []*model.Word, tok *model.Token) []*model.Word {
	tok.Trim()
	if tok.Len() == 0 {
		return out
	}
	return append(out, tok.Word())
}

func lastAlnum(tok *model.Token) (model.Glyph, bool) {
	glyphs := tok.Glyphs()
	for i := len(glyphs) - 1; i >= 0; i-- {
		if isAlnum(glyphs[i].Char) {
			return glyphs[i], true
		}
	}
	return model.Glyph{}, false
}

func isAlnum(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return s != ""
}

func fontSize(g model.Glyph) float64 {
	if g.Size > 0 {
		return g.Size
	}
	return g.Height()
}

// groupLines sorts glyphs top to bottom and groups those whose vertical
// midpoints lie within tol times the line's first glyph height.
func groupLines(glyphs []model.Glyph, tol float64) [][]model.Glyph {
	if len(glyphs) == 0 {
		return nil
	}

	sorted := append([]model.Glyph(nil), glyphs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MidY() > sorted[j].MidY()
	})

	var lines [][]model.Glyph
	current := []model.Glyph{sorted[0]}
	for _, g := range sorted[1:] {
		ref := current[0]
		if abs(g.MidY()-ref.MidY()) <= ref.Height()*tol {
			current = append(current, g)
			continue
		}
		lines = append(lines, current)
		current = []model.Glyph{g}
	}
	return append(lines, current)
}

// orderLine sorts a line into reading order
func orderLine(line []model.Glyph, dir Direction) {
	sort.SliceStable(line, func(i, j int) bool {
		if dir == RTL {
			return line[i].X0 > line[j].X0
		}
		return line[i].X0 < line[j].X0
	})
}

// gapBetween is the horizontal distance from the end of a to the start of
// b in reading order
func gapBetween(a, b model.Glyph, dir Direction) float64 {
	if dir == RTL {
		return a.X0 - b.X1
	}
	return b.X0 - a.X1
}

// spaceBetween synthesises a space glyph covering the gap between a and b
func spaceBetween(a, b model.Glyph, dir Direction) model.Glyph {
	box := model.NewBox(a.X1, b.X0, a.Y0, a.Y1)
	if dir == RTL {
		box = model.NewBox(b.X1, a.X0, a.Y0, a.Y1)
	}
	return model.Glyph{Box: box, Char: " ", Font: a.Font, Size: a.Size}
}

// lineMetrics summarises the glyph spacing of one line
type lineMetrics struct {
	hasExplicitSpaces bool    // the line carries space glyphs
	typicalGap        float64 // 25th percentile of gaps between letters
}

func measureLine(line []model.Glyph, dir Direction) lineMetrics {
	var m lineMetrics
	var gaps []float64
	for i, g := range line {
		if g.IsSpace() {
			m.hasExplicitSpaces = true
			continue
		}
		if i == 0 || line[i-1].IsSpace() {
			continue
		}
		if gap := gapBetween(line[i-1], g, dir); gap > 0 {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) > 0 {
		sort.Float64s(gaps)
		m.typicalGap = gaps[len(gaps)/4]
	}
	return m
}

// needsSpace reports whether a word space is missing between two glyphs.
// Lines with explicit spaces are trusted unless a gap is far wider than
// usual; otherwise a gap of a fifth of the font size, or three typical
// gaps, is a space.
func (m lineMetrics) needsSpace(prev, g model.Glyph, gap float64) bool {
	if prev.IsSpace() || g.IsSpace() {
		return false
	}
	size := fontSize(prev)
	if gap < 0 || gap < size*0.05 {
		return false
	}
	if m.hasExplicitSpaces {
		return m.typicalGap > 0 && gap >= m.typicalGap*5
	}
	threshold := size * 0.2
	if m.typicalGap > 0 {
		threshold = max(threshold, m.typicalGap*3)
	}
	return gap >= threshold
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
