package tables

import (
	"sort"

	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/nest"
)

// Block is a group of words separated from the rest of the page by white
// space or rule lines
type Block = nest.Nest[*model.Word]

// Segment splits a page into blocks, top to bottom. Words are grouped by
// negative clustering with the segment gaps, lone words are folded into the
// block that follows them, and blocks are cut at horizontal rule lines
// running through them.
func Segment(page *model.Page, s Settings) []*Block {
	words := append([]*model.Word(nil), page.Words...)
	model.SortWords(words)

	blocks := foldSingletons(nest.NegativeCluster(nest.New(words...), s.SegmentYGap, s.SegmentXGap).Items())

	var rules []*model.Line
	for _, l := range page.Lines {
		if l.Orientation() == model.Horizontal {
			rules = append(rules, l)
		}
	}
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Y0 > rules[j].Y0 })

	var out []*Block
	for _, b := range blocks {
		out = append(out, cutAtRules(b, rules)...)
	}
	return out
}

func foldSingletons(blocks []*Block) []*Block {
	var out []*Block
	var pending []*model.Word
	for _, b := range blocks {
		if b.Len() == 1 {
			pending = append(pending, b.Items()...)
			continue
		}
		out = append(out, nest.New(append(pending, b.Items()...)...))
		pending = nil
	}

	if len(pending) > 0 {
		if len(out) == 0 {
			return []*Block{nest.New(pending...)}
		}
		out[len(out)-1].Append(pending...)
	}
	return out
}

// cutAtRules splits a block at each rule line that crosses its x range
// strictly inside its y range; rules are ordered top to bottom.
func cutAtRules(b *Block, rules []*model.Line) []*Block {
	var out []*Block
	rest := b
	for _, r := range rules {
		box := rest.Bounds()
		if r.Y0 <= box.Y0 || r.Y0 >= box.Y1 || !r.Box.Expand(0.5).IntersectsX(box) {
			continue
		}
		above, below := rest.Split(func(w *model.Word) bool { return w.MidY() > r.Y0 })
		if above.Empty() || below.Empty() {
			continue
		}
		out = append(out, above)
		rest = below
	}
	return append(out, rest)
}
