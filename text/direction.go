package text

import (
	"unicode"

	"github.com/tsawler/gravy/model"
)

// Direction is the writing direction of a run of glyphs
type Direction int

const (
	// LTR for Latin, Cyrillic, CJK and most other scripts
	LTR Direction = iota
	// RTL for Arabic, Hebrew, Syriac, Thaana and N'Ko
	RTL
	// Neutral for digits, punctuation, symbols and spaces
	Neutral
)

func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

var rtlScripts = []*unicode.RangeTable{
	unicode.Arabic,
	unicode.Hebrew,
	unicode.Syriac,
	unicode.Thaana,
	unicode.Nko,
}

// CharDirection returns the inherent direction of a rune
func CharDirection(r rune) Direction {
	if unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
		return Neutral
	}
	if unicode.In(r, rtlScripts...) {
		return RTL
	}
	return LTR
}

// DetectDirection returns the dominant direction of s by counting strongly
// directional runes, or Neutral if there are none.
func DetectDirection(s string) Direction {
	ltr, rtl := 0, 0
	for _, r := range s {
		switch CharDirection(r) {
		case LTR:
			ltr++
		case RTL:
			rtl++
		}
	}
	switch {
	case ltr == 0 && rtl == 0:
		return Neutral
	case rtl > ltr:
		return RTL
	default:
		return LTR
	}
}

// lineDirection returns the dominant direction of a line of glyphs,
// defaulting to LTR.
func lineDirection(line []model.Glyph) Direction {
	ltr, rtl := 0, 0
	for _, g := range line {
		switch DetectDirection(g.Char) {
		case LTR:
			ltr++
		case RTL:
			rtl++
		}
	}
	if rtl > ltr {
		return RTL
	}
	return LTR
}
