package tables

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/gravy/grid"
	"github.com/tsawler/gravy/internal/logging"
	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/nest"
)

// maxSplitDepth bounds how many levels of sub-labels a column may carry
const maxSplitDepth = 3

type column = nest.Nest[*model.Word]

// builder reconstructs the spokes of one table
type builder struct {
	table   *Table
	index   *grid.Index
	s       Settings
	log     *logrus.Entry
	claimed map[*model.Word]bool
}

// Reconstruct resolves the table's spokes against the page index. Vertical
// spokes are found by walking the header labels right to left, horizontal
// spokes from the label columns left of the data.
func (t *Table) Reconstruct(ix *grid.Index, s Settings) *Spokes {
	b := &builder{
		table:   t,
		index:   ix,
		s:       s,
		log:     logging.For("spokes").WithField("table", t.Title),
		claimed: make(map[*model.Word]bool),
	}

	for _, w := range t.Header.Row.Items() {
		b.claimed[w] = true
	}

	vertical := b.verticalPass()
	horizontal := b.horizontalPass(vertical)

	t.Spokes = NewSpokes(append(vertical, horizontal...)...)
	return t.Spokes
}

// labelStrips returns the search rectangles right and left of a label for a
// given right offset. Both run from the table bottom to the label bottom.
func labelStrips(label *model.Word, offR float64, t *Table) (right, left model.Box) {
	mid := label.MidX()
	right = model.Box{X0: mid, X1: mid + offR, Y0: t.Box.Y0, Y1: label.Y0}
	left = model.Box{X0: mid - offR, X1: mid, Y0: t.Box.Y0, Y1: label.Y0}
	return right, left
}

func (b *builder) verticalPass() []*Spoke {
	labels := b.table.Header.Labels.Items()
	offR := b.table.Header.Period

	var spokes []*Spoke
	for i := len(labels) - 1; i >= 0; i-- {
		label := labels[i]
		rightBox, _ := labelStrips(label, offR, b.table)

		colsR := b.columns(rightBox, labels, label)
		if len(colsR) > 0 {
			rightmost := math.Inf(-1)
			for _, c := range colsR {
				mid, _ := c.Agg(nest.MidX, nest.Median)
				rightmost = math.Max(rightmost, mid)
			}
			offR = math.Max(math.Abs(rightmost-label.MidX()), b.s.WordToleranceHorizontal)
		}
		b.claim(colsR)

		_, leftBox := labelStrips(label, offR, b.table)
		colsL := b.columns(leftBox, labels, label)
		b.claim(colsL)

		cols := append(colsL, colsR...)
		if len(cols) == 0 {
			b.log.WithError(model.ErrEmptyRegion).WithField("label", label.Text).Debug("vertical spoke dropped")
			continue
		}
		sort.SliceStable(cols, func(i, j int) bool {
			return cols[i].Bounds().MidX() < cols[j].Bounds().MidX()
		})

		spokes = append(spokes, b.splitV([]*model.Word{label}, cols, 0)...)
	}
	return spokes
}

// columns returns the unclaimed columns in a strip that belong to label,
// i.e. whose words lie nearer to it than to any other header label.
// Columns much shorter than the longest in the strip are dropped as noise.
func (b *builder) columns(rect model.Box, labels []*model.Word, label *model.Word) []*column {
	g := b.index.Grid(rect).Without(b.claimed)
	owned := g.Words.Filter(func(w *model.Word) bool {
		return nearestLabel(labels, w.MidX()) == label
	})
	if owned.Empty() {
		return nil
	}

	cols := grid.Fit(rect, owned, g.Lines, g.Options()).Columns().Items()
	return b.dropNoise(cols)
}

func (b *builder) dropNoise(cols []*column) []*column {
	longest := 0
	for _, c := range cols {
		longest = max(longest, c.Len())
	}
	if longest < b.s.MinWordsVertical {
		return cols
	}

	cut := b.s.MinWordsVerticalRatio * float64(longest)
	out := cols[:0]
	for _, c := range cols {
		if float64(c.Len()) >= cut {
			out = append(out, c)
		}
	}
	return out
}

func (b *builder) claim(cols []*column) {
	for _, c := range cols {
		for _, w := range c.Items() {
			b.claimed[w] = true
		}
	}
}

func nearestLabel(labels []*model.Word, x float64) *model.Word {
	var best *model.Word
	dist := math.Inf(1)
	for _, l := range labels {
		if d := math.Abs(l.MidX() - x); d < dist {
			best, dist = l, d
		}
	}
	return best
}

// splitV turns the columns under a label path into spokes. A single column
// is one spoke. Several columns mean sub-labels: the top row of each column
// is appended to the path and the rest of the column is split again.
func (b *builder) splitV(path []*model.Word, cols []*column, depth int) []*Spoke {
	if len(cols) == 0 {
		return nil
	}
	if len(cols) < 2 || depth >= maxSplitDepth {
		data := unique(nest.Combine(nest.New(cols...)))
		if data.Empty() {
			return nil
		}
		return []*Spoke{newSpoke(model.Vertical, path, data)}
	}

	var out []*Spoke
	for _, col := range cols {
		top, _ := col.SortBy(nest.Y1, true).First()
		sub, rest := col.Split(func(w *model.Word) bool {
			return math.Abs(w.Y1-top.Y1) <= b.s.WordToleranceVertical
		})
		subPath := append(append([]*model.Word(nil), path...), sub.SortBy(nest.X0, false).Items()...)

		if rest.Empty() {
			b.log.WithError(model.ErrEmptyRegion).WithField("label", joinWords(sub)).Debug("sub-label without data dropped")
			continue
		}

		g := grid.Fit(rest.Bounds().Expand(1), rest, nest.New[*model.Line](), b.index.Options())
		out = append(out, b.splitV(subPath, g.Columns().Items(), depth+1)...)
	}
	return out
}

func (b *builder) horizontalPass(vertical []*Spoke) []*Spoke {
	if len(vertical) == 0 {
		return nil
	}

	dataX0 := math.Inf(1)
	for _, s := range vertical {
		dataX0 = math.Min(dataX0, s.Data.Bounds().X0)
	}

	// labels may overhang the first data column by the x tolerance
	t := b.table
	area := model.Box{X0: t.Box.X0, X1: dataX0 + b.s.XTolerance(), Y0: t.Box.Y0, Y1: t.Header.Bounds().Y0}
	g := b.index.Grid(area).Without(b.claimed)
	if g.Words.Empty() {
		b.log.WithError(model.ErrEmptyRegion).Debug("no row labels")
		return nil
	}

	// innermost label column first
	labelCols := g.Columns().Items()
	sort.SliceStable(labelCols, func(i, j int) bool {
		return labelCols[i].Bounds().MidX() > labelCols[j].Bounds().MidX()
	})
	labelCols = dropSubsumed(labelCols)

	var template []grid.Segment
	segmented := make([][]grid.Segment, 0, len(labelCols))
	for _, col := range labelCols {
		segs := g.SegmentColumn(col, template)
		if template == nil {
			template = segs
		}
		segmented = append(segmented, segs)
	}

	var spokes []*Spoke
	for _, seg := range segmented[0] {
		strip := model.Box{X0: seg.Words.Bounds().X1, X1: t.Box.X1, Y0: seg.Box.Y0, Y1: seg.Box.Y1}
		rg := b.index.Grid(strip)

		if n := rg.Columns().Len(); n < t.Header.Labels.Len() {
			b.log.WithField("label", joinWords(seg.Words)).WithField("columns", n).Debug("incomplete row dropped")
			continue
		}

		data := rg.Words.Filter(func(w *model.Word) bool {
			mid := w.MidY()
			return mid > seg.Box.Y0 && mid < seg.Box.Y1 && !t.Header.Row.Contains(w)
		})
		if data.Empty() || data.Len() < b.s.MinWordsHorizontal {
			continue
		}

		labels := b.consolidateH(seg, segmented[1:])
		spokes = append(spokes, newSpoke(model.Horizontal, labels, data))
	}
	return spokes
}

// consolidateH builds the label path of a row: the row's own label plus
// every label of the outer columns whose band overlaps the row's band. A
// word already on the path is not added again.
func (b *builder) consolidateH(row grid.Segment, outer [][]grid.Segment) []*model.Word {
	tol := b.s.YTolerance()
	labels := row.Words.Items()
	onPath := make(map[*model.Word]bool, len(labels))
	for _, w := range labels {
		onPath[w] = true
	}

	for _, col := range outer {
		for _, seg := range col {
			band := seg.Box
			if band.Height() > 2*tol {
				band = band.WithY(band.Y0+tol, band.Y1-tol)
			}
			if !band.IntersectsY(row.Box) {
				continue
			}
			for _, w := range seg.Words.Items() {
				if !onPath[w] {
					onPath[w] = true
					labels = append(labels, w)
				}
			}
		}
	}
	return labels
}

// dropSubsumed drops label columns whose words all belong to a column
// earlier in cols. Alignment clusters overlap, so the same label can
// show up in more than one column.
func dropSubsumed(cols []*column) []*column {
	seen := make(map[*model.Word]bool)
	out := make([]*column, 0, len(cols))
	for _, c := range cols {
		fresh := false
		for _, w := range c.Items() {
			if !seen[w] {
				fresh = true
				seen[w] = true
			}
		}
		if fresh {
			out = append(out, c)
		}
	}
	return out
}

// unique drops repeated words, keeping the first occurrence
func unique(n *nest.Nest[*model.Word]) *nest.Nest[*model.Word] {
	seen := make(map[*model.Word]bool, n.Len())
	return n.Filter(func(w *model.Word) bool {
		if seen[w] {
			return false
		}
		seen[w] = true
		return true
	})
}
