// Package text turns positioned glyphs into words and normalises word text.
//
// # Word Assembly
//
// [Words] groups glyphs into lines, orders each line in its reading
// direction and cuts it into words:
//
//	words := text.Words(glyphs, text.DefaultOptions())
//
// A word in this package is a phrase. Single spaces stay inside it, while a
// gap of about one font size, a run of four or more blanks, or a change of
// font after a long run of letters ends it. Glyph streams without explicit
// spaces get spaces inserted where the gap between letters is wider than
// usual for the line.
//
// # Text Direction
//
// The package supports bidirectional text with the [Direction] type:
//
//   - LTR - left-to-right (Latin, CJK, etc.)
//   - RTL - right-to-left (Arabic, Hebrew, etc.)
//   - Neutral - direction-neutral characters (numbers, punctuation)
//
// The [DetectDirection] function analyzes text to determine its direction.
//
// # Cleaning
//
// [Clean] folds compatibility and full-width forms and collapses whitespace.
// [SplitSpaces] breaks words that hide column gaps behind runs of blanks.
package text
