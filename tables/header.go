package tables

import (
	"math"
	"regexp"

	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/nest"
	"github.com/tsawler/gravy/text"
)

// Header is a word row in which the header pattern recurs
type Header struct {
	Row    *nest.Nest[*model.Word] // the whole row, left to right
	Labels *nest.Nest[*model.Word] // words matching the pattern, left to right
	Index  int                     // position among the page's rows
	Score  int                     // consecutive pattern hits
	Period float64                 // median spacing between consecutive labels
}

func newHeader(row *nest.Nest[*model.Word], index, score int, patterns []*regexp.Regexp) *Header {
	ordered := row.SortBy(nest.X0, false)
	labels := ordered.Filter(func(w *model.Word) bool {
		return text.MatchAny(w.Text, patterns)
	})

	h := &Header{Row: ordered, Labels: labels, Index: index, Score: score}
	if deltas := labels.Delta(func(a, b *model.Word) float64 { return math.Abs(b.X0 - a.X0) }); len(deltas) > 0 {
		h.Period = nest.Median.Of(deltas)
	}
	return h
}

// Bounds returns the header row's box
func (h *Header) Bounds() model.Box {
	return h.Row.Bounds()
}

// ScoreIncidence counts the pattern hits of a row, in left to right order,
// that sit next to another hit. A lone match scores nothing.
func ScoreIncidence(row *nest.Nest[*model.Word], patterns []*regexp.Regexp) int {
	words := row.SortBy(nest.X0, false).Items()
	hits := make([]bool, len(words))
	for i, w := range words {
		hits[i] = text.MatchAny(w.Text, patterns)
	}

	score := 0
	for i, hit := range hits {
		if !hit {
			continue
		}
		if (i > 0 && hits[i-1]) || (i < len(hits)-1 && hits[i+1]) {
			score++
		}
	}
	return score
}
