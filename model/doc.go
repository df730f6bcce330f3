// Package model defines the positioned page elements that table recovery
// works on.
//
// Upstream collaborators (a PDF decoder, an OCR-free word builder) produce a
// [Page] per page: its size, an ordered list of [Word] tokens and a list of
// rule [Line] segments. Everything downstream only reads these values; the
// only mutations are [Word.Translate]/[Line.Translate] for page
// concatenation ([Concat]), line squashing ([NormalizeLines]) and
// [Word.SetText] for whitespace clean-up.
//
// # Geometry
//
// [Box] stores edges directly (X0 left, X1 right, Y0 bottom, Y1 top) with Y
// growing upwards, the PDF convention. Intersection is strict: boxes that
// only share an edge do not intersect.
//
// # Elements
//
// [Element] is a closed variant implemented by [Word] and [Line]. Glyph-level
// input is carried by [Token], which owns its [Glyph] run and caches its box.
//
// # Errors
//
// The sentinel errors [ErrEmptyRegion], [ErrNoHeaderFound],
// [ErrAmbiguousAlignment] and [ErrMalformedElement] classify non-fatal
// drops; none of them aborts processing of a whole document.
package model
