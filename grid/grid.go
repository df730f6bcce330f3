package grid

import (
	"math"
	"sort"

	"github.com/tsawler/gravy/internal/logging"
	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/nest"
)

// Words is a nest of word tokens
type Words = nest.Nest[*model.Word]

// Columns is a nest of word clusters
type Columns = nest.Nest[*nest.Nest[*model.Word]]

// Options holds the clustering tolerances used by a grid
type Options struct {
	WordToleranceHorizontal float64 // alignment tolerance when finding columns
	WordToleranceVertical   float64 // alignment tolerance when finding rows
	RuleLineCoverage        float64 // share of rows that must sit on a rule line to slot between lines
}

// DefaultOptions returns the default grid tolerances
func DefaultOptions() Options {
	return Options{
		WordToleranceHorizontal: 5,
		WordToleranceVertical:   5,
		RuleLineCoverage:        0.8,
	}
}

// Grid is a rectangular view of a page holding the words and lines that
// strictly intersect its rectangle. A grid is never modified after it is
// built; narrower queries build a new grid.
type Grid struct {
	Rect  model.Box
	Words *Words
	Lines *nest.Nest[*model.Line]

	hLines *nest.Nest[*model.Line]
	vLines *nest.Nest[*model.Line]
	opts   Options
}

// Fit builds a grid by testing every word and line against rect
func Fit(rect model.Box, words *Words, lines *nest.Nest[*model.Line], opts Options) *Grid {
	return newGrid(rect,
		words.Filter(func(w *model.Word) bool { return w.Box.Intersects(rect) }),
		lines.Filter(func(l *model.Line) bool { return l.Box.Intersects(rect) }),
		opts)
}

func newGrid(rect model.Box, words *Words, lines *nest.Nest[*model.Line], opts Options) *Grid {
	g := &Grid{Rect: rect, Words: words, Lines: lines, opts: opts}
	g.hLines, g.vLines = lines.Split(func(l *model.Line) bool {
		return l.Orientation() == model.Horizontal
	})
	return g
}

// Options returns the tolerances the grid was built with
func (g *Grid) Options() Options {
	return g.opts
}

// HorizontalLines returns the horizontal rule lines in the grid
func (g *Grid) HorizontalLines() *nest.Nest[*model.Line] {
	return g.hLines
}

// VerticalLines returns the vertical rule lines in the grid
func (g *Grid) VerticalLines() *nest.Nest[*model.Line] {
	return g.vLines
}

// Without returns a grid over the same rectangle minus the given words
func (g *Grid) Without(claimed map[*model.Word]bool) *Grid {
	if len(claimed) == 0 {
		return g
	}
	words := g.Words.Filter(func(w *model.Word) bool { return !claimed[w] })
	return &Grid{Rect: g.Rect, Words: words, Lines: g.Lines, hLines: g.hLines, vLines: g.vLines, opts: g.opts}
}

// Columns groups the grid's words into columns. Words are clustered on
// their left edges, right edges and midpoints; the resulting clusters are
// grouped again by midpoint with half the median word width as tolerance,
// and the most populous cluster of each group is kept as the column.
// Columns come out in the order their first word was met.
func (g *Grid) Columns() *Columns {
	if g.Words.Empty() {
		return nest.New[*nest.Nest[*model.Word]]()
	}

	mega := nest.MegaCluster(g.Words, model.Horizontal, g.opts.WordToleranceHorizontal)
	if mega.Ambiguous {
		logging.For("grid").WithError(model.ErrAmbiguousAlignment).WithField("winner", mega.Winner).Debug("columns")
	}

	width, _ := g.Words.Agg(nest.W, nest.Median)
	coarse := nest.Cluster(mega.Union(), nest.MidX, width/2, false)

	cols := make([]*nest.Nest[*model.Word], 0, coarse.Len())
	for _, group := range coarse.Items() {
		if col, ok := nest.Largest(group); ok {
			cols = append(cols, col)
		}
	}
	return nest.New(cols...)
}

// Rows groups the grid's words into rows using the winning vertical
// alignment, so every word lands in exactly one row.
func (g *Grid) Rows() *Columns {
	if g.Words.Empty() {
		return nest.New[*nest.Nest[*model.Word]]()
	}

	mega := nest.MegaCluster(g.Words, model.Vertical, g.opts.WordToleranceVertical)
	if mega.Ambiguous {
		logging.For("grid").WithError(model.ErrAmbiguousAlignment).WithField("winner", mega.Winner).Debug("rows")
	}
	return mega.Winning()
}

// Segment is one row of a segmented column: its words and the row band
// they occupy.
type Segment struct {
	Words *Words
	Box   model.Box
}

// SegmentColumn splits a column into row segments. Words are grouped into
// rows with half the mean row spacing as tolerance. When enough rows sit on
// a horizontal rule line crossing the column, rows are slotted between the
// rule lines; otherwise the row bands are stretched to fill the grid's
// height. A template of segments from a neighbouring column, if given,
// snaps the band edges onto its boundaries.
func (g *Grid) SegmentColumn(col *Words, template []Segment) []Segment {
	if col.Empty() {
		return nil
	}

	top := col.SortBy(nest.MidY, true)
	spacing := rowSpacing(top)
	rows := nest.Cluster(top, nest.MidY, spacing/2, false)

	var segs []Segment
	if lines := g.ruleLines(col.Bounds(), rows, spacing); lines != nil {
		segs = slotBetween(col, lines, g.Rect)
	} else {
		sorted, boxes := rows.FillYGaps(g.Rect.Y0, g.Rect.Y1)
		for i, row := range sorted.Items() {
			segs = append(segs, Segment{Words: row, Box: boxes[i].WithX(row.Bounds().X0, row.Bounds().X1)})
		}
	}

	if len(template) > 0 {
		snapSegments(segs, template)
	}

	// top to bottom
	sort.SliceStable(segs, func(i, j int) bool {
		return segs[i].Box.MidY() > segs[j].Box.MidY()
	})
	return segs
}

// rowSpacing is the mean distance between consecutive distinct row
// midpoints of words ordered top to bottom. Words closer than half the
// median height share a row and are skipped.
func rowSpacing(top *Words) float64 {
	height, _ := top.Agg(nest.H, nest.Median)
	var deltas []float64
	for _, d := range top.Delta(func(a, b *model.Word) float64 { return a.MidY() - b.MidY() }) {
		if d > height/2 {
			deltas = append(deltas, d)
		}
	}
	if len(deltas) == 0 {
		return math.Max(height, 1)
	}
	return nest.Mean.Of(deltas)
}

// ruleLines returns the y positions of horizontal rule lines crossing the
// column when at least the configured share of rows has one within half a
// row spacing of its top or bottom edge. It returns nil otherwise.
func (g *Grid) ruleLines(colBox model.Box, rows *Columns, spacing float64) []float64 {
	crossing := g.hLines.Filter(func(l *model.Line) bool {
		return l.X0 <= colBox.X1 && l.X1 >= colBox.X0
	})
	if crossing.Empty() || rows.Empty() {
		return nil
	}

	near := 0
	for _, row := range rows.Items() {
		b := row.Bounds()
		for _, l := range crossing.Items() {
			y := l.MidY()
			if math.Abs(y-b.Y0) <= spacing/2 || math.Abs(y-b.Y1) <= spacing/2 {
				near++
				break
			}
		}
	}
	if float64(near)/float64(rows.Len()) < g.opts.RuleLineCoverage {
		return nil
	}

	ys := crossing.Values(nest.MidY)
	sort.Float64s(ys)
	return ys
}

// slotBetween slots the column's words into the bands between rule lines,
// the grid edges closing the outermost bands. Empty bands are skipped.
func slotBetween(col *Words, ys []float64, rect model.Box) []Segment {
	bounds := append([]float64{rect.Y0}, ys...)
	bounds = append(bounds, rect.Y1)

	var slots []nest.Span
	for i := 0; i < len(bounds)-1; i++ {
		if bounds[i+1] > bounds[i] {
			slots = append(slots, nest.Span{Lo: bounds[i], Hi: bounds[i+1]})
		}
	}

	colBox := col.Bounds()
	var segs []Segment
	for i, words := range nest.SlotY(col, slots) {
		if words.Empty() {
			continue
		}
		segs = append(segs, Segment{
			Words: words,
			Box:   model.Box{X0: colBox.X0, X1: colBox.X1, Y0: slots[i].Lo, Y1: slots[i].Hi},
		})
	}
	return segs
}

// snapSegments moves each band edge onto the nearest template boundary
func snapSegments(segs []Segment, template []Segment) {
	var edges []float64
	for _, t := range template {
		edges = append(edges, t.Box.Y0, t.Box.Y1)
	}
	nearest := func(v float64) float64 {
		best := v
		dist := math.Inf(1)
		for _, e := range edges {
			if d := math.Abs(e - v); d < dist {
				best, dist = e, d
			}
		}
		return best
	}
	for i := range segs {
		y0, y1 := nearest(segs[i].Box.Y0), nearest(segs[i].Box.Y1)
		if y1 > y0 {
			segs[i].Box = segs[i].Box.WithY(y0, y1)
		}
	}
}
