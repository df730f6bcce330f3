package text

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/tsawler/gravy/model"
)

// Bullets are glyphs that mark list items rather than carry content
var Bullets = []string{
	"(cid:5)", "❖", "·", "•", "●", "⚫", "\u25aa", "\uf0b7",
}

// Clean normalises compatibility forms and full-width characters, collapses
// runs of whitespace and trims the result.
func Clean(s string) string {
	s = width.Fold.String(norm.NFKC.String(s))
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// IsBullet reports whether s is only a bullet marker
func IsBullet(s string) bool {
	s = strings.TrimSpace(s)
	for _, b := range Bullets {
		if s == b {
			return true
		}
	}
	return false
}

// MatchAny reports whether any pattern matches s
func MatchAny(s string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// gapRun is a run of at least four separator characters
var gapRun = regexp.MustCompile(`[\s|,·]{4,200}`)

// SplitSpaces splits a word wherever its text holds a wide run of spaces or
// separators, as left by layout engines that pad columns with blanks. The
// parts get proportional slices of the word's box.
func SplitSpaces(w *model.Word) []*model.Word {
	runes := []rune(w.Text)
	locs := gapRun.FindAllStringIndex(w.Text, -1)
	if len(locs) == 0 || len(runes) == 0 {
		return []*model.Word{w}
	}

	perRune := w.Width() / float64(len(runes))
	var out []*model.Word
	emit := func(from, to int) {
		part := w.Text[from:to]
		if strings.TrimSpace(part) == "" {
			return
		}
		r0 := len([]rune(w.Text[:from]))
		r1 := r0 + len([]rune(part))
		box := w.Box.WithX(w.X0+float64(r0)*perRune, w.X0+float64(r1)*perRune)
		out = append(out, model.NewWord(box, part, w.Font))
	}

	prev := 0
	for _, loc := range locs {
		emit(prev, loc[0])
		prev = loc[1]
	}
	emit(prev, len(w.Text))
	return out
}
