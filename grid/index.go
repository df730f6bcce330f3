package grid

import (
	"sort"

	"github.com/tidwall/rtree"

	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/nest"
)

// Index is a spatial index over one page's words and lines. It is built
// once per page and answers every grid query made while reconstructing
// that page's tables.
type Index struct {
	page  *model.Page
	opts  Options
	words rtree.RTreeG[int]
	lines rtree.RTreeG[int]
}

// NewIndex indexes the words and lines of a page
func NewIndex(page *model.Page, opts Options) *Index {
	ix := &Index{page: page, opts: opts}
	for i, w := range page.Words {
		ix.words.Insert(corners(w.Box), far(w.Box), i)
	}
	for i, l := range page.Lines {
		ix.lines.Insert(corners(l.Box), far(l.Box), i)
	}
	return ix
}

// Page returns the indexed page
func (ix *Index) Page() *model.Page {
	return ix.page
}

// Options returns the tolerances given to every grid built by the index
func (ix *Index) Options() Options {
	return ix.opts
}

// Grid returns the grid over rect. Candidates come from the index and are
// then held to strict intersection, keeping page order.
func (ix *Index) Grid(rect model.Box) *Grid {
	wi := search(&ix.words, rect)
	words := make([]*model.Word, 0, len(wi))
	for _, i := range wi {
		if w := ix.page.Words[i]; w.Box.Intersects(rect) {
			words = append(words, w)
		}
	}

	li := search(&ix.lines, rect)
	lines := make([]*model.Line, 0, len(li))
	for _, i := range li {
		if l := ix.page.Lines[i]; l.Box.Intersects(rect) {
			lines = append(lines, l)
		}
	}

	return newGrid(rect, nest.New(words...), nest.New(lines...), ix.opts)
}

// Full returns the grid covering the whole page
func (ix *Index) Full() *Grid {
	return ix.Grid(ix.page.Box().Expand(1))
}

func search(tr *rtree.RTreeG[int], rect model.Box) []int {
	var out []int
	tr.Search(corners(rect), far(rect), func(_, _ [2]float64, i int) bool {
		out = append(out, i)
		return true
	})
	sort.Ints(out)
	return out
}

func corners(b model.Box) [2]float64 {
	return [2]float64{b.X0, b.Y0}
}

func far(b model.Box) [2]float64 {
	return [2]float64{b.X1, b.Y1}
}
