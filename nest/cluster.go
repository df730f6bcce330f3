package nest

import (
	"math"
	"slices"
	"sort"

	"github.com/tsawler/gravy/model"
)

// Alignment names the three positional hypotheses tried by MegaCluster
type Alignment int

const (
	AlignStart Alignment = iota // left or bottom edge
	AlignEnd                    // right or top edge
	AlignMid                    // midpoint
)

func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignEnd:
		return "end"
	case AlignMid:
		return "mid"
	default:
		return "unknown"
	}
}

// Key returns the coordinate this alignment reads along an axis. The
// horizontal axis reads x values, the vertical axis y values.
func (a Alignment) Key(axis model.Orientation) Key {
	if axis == model.Vertical {
		switch a {
		case AlignStart:
			return Y0
		case AlignEnd:
			return Y1
		default:
			return MidY
		}
	}
	switch a {
	case AlignStart:
		return X0
	case AlignEnd:
		return X1
	default:
		return MidX
	}
}

// Cluster partitions the items into groups whose key lies within tol of the
// group's anchor (its first member). With stretchy, an item may join by
// matching any current member, so a group can drift; an item that matches
// several groups chains them into one. Otherwise an item joins the first
// group it matches. Groups come out in the order their anchors appear in
// the input, members in input order.
func Cluster[T Item](n *Nest[T], key Key, tol float64, stretchy bool) *Nest[*Nest[T]] {
	type group struct {
		items []T
		keys  []float64
		pos   []int
	}

	var groups []*group
	for i, it := range n.items {
		v := key(it.Bounds())

		var hits []int
		for gi, g := range groups {
			if stretchy {
				for _, k := range g.keys {
					if math.Abs(k-v) <= tol {
						hits = append(hits, gi)
						break
					}
				}
			} else if math.Abs(g.keys[0]-v) <= tol {
				hits = append(hits, gi)
				break
			}
		}

		if len(hits) == 0 {
			groups = append(groups, &group{items: []T{it}, keys: []float64{v}, pos: []int{i}})
			continue
		}

		target := groups[hits[0]]
		target.items = append(target.items, it)
		target.keys = append(target.keys, v)
		target.pos = append(target.pos, i)
		if len(hits) == 1 {
			continue
		}

		// merge the chained groups into the earliest, keeping input order
		for _, gi := range hits[1:] {
			g := groups[gi]
			target.items = append(target.items, g.items...)
			target.keys = append(target.keys, g.keys...)
			target.pos = append(target.pos, g.pos...)
		}
		sort.Sort(byPos[T]{target.items, target.keys, target.pos})
		kept := groups[:0]
		for gi, g := range groups {
			if !slices.Contains(hits[1:], gi) {
				kept = append(kept, g)
			}
		}
		groups = kept
	}

	out := make([]*Nest[T], len(groups))
	for i, g := range groups {
		out[i] = New(g.items...)
	}
	return New(out...)
}

// byPos sorts a group's parallel slices by input position
type byPos[T Item] struct {
	items []T
	keys  []float64
	pos   []int
}

func (b byPos[T]) Len() int           { return len(b.pos) }
func (b byPos[T]) Less(i, j int) bool { return b.pos[i] < b.pos[j] }
func (b byPos[T]) Swap(i, j int) {
	b.items[i], b.items[j] = b.items[j], b.items[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
	b.pos[i], b.pos[j] = b.pos[j], b.pos[i]
}

// Mega holds the three clustering passes run by MegaCluster
type Mega[T Item] struct {
	Passes    [3]*Nest[*Nest[T]] // indexed by Alignment
	Winner    Alignment          // pass that produced the largest single cluster
	Ambiguous bool               // another pass produced an equally large cluster
}

// Union returns the clusters of all three passes, start pass first
func (m *Mega[T]) Union() *Nest[*Nest[T]] {
	var all []*Nest[T]
	for _, p := range m.Passes {
		all = append(all, p.items...)
	}
	return New(all...)
}

// Winning returns the clusters of the winning pass
func (m *Mega[T]) Winning() *Nest[*Nest[T]] {
	return m.Passes[m.Winner]
}

// MegaCluster clusters the items three times along an axis, by start edge,
// end edge and midpoint. The pass holding the largest single cluster wins;
// ties go to the earlier pass (start, then end, then mid) and are flagged.
func MegaCluster[T Item](n *Nest[T], axis model.Orientation, tol float64) *Mega[T] {
	m := &Mega[T]{}
	best := 0
	for _, a := range []Alignment{AlignStart, AlignEnd, AlignMid} {
		pass := Cluster(n, a.Key(axis), tol, false)
		m.Passes[a] = pass

		size := 0
		for _, c := range pass.items {
			if c.Len() > size {
				size = c.Len()
			}
		}

		switch {
		case size > best:
			best = size
			m.Winner = a
			m.Ambiguous = false
		case size == best && size > 0:
			m.Ambiguous = true
		}
	}
	return m
}

// NegativeCluster groups items that are NOT separated by at least yGap
// vertically or that sit within xGap of a block's left edge. Items are taken
// top to bottom; each block grows greedily from its top item. A zero gap
// disables that check.
func NegativeCluster[T Item](n *Nest[T], yGap, xGap float64) *Nest[*Nest[T]] {
	near := func(b, block model.Box) bool {
		okY := true
		if yGap != 0 {
			okY = math.Abs(b.Y1-block.Y0) < yGap || b.Y1 > block.Y0
		}
		okX := true
		if xGap != 0 {
			okX = math.Abs(b.X0-block.X0) < xGap
		}
		return okY && okX
	}

	var blocks []*Nest[T]
	remaining := n.SortBy(Y1, true).items
	for len(remaining) > 0 {
		block := New(remaining[0])
		var rest []T
		for _, it := range remaining[1:] {
			if !near(it.Bounds(), block.box) {
				rest = append(rest, it)
				continue
			}
			block.Append(it)
		}
		blocks = append(blocks, block)
		remaining = rest
	}
	return New(blocks...)
}

// Combine flattens one level of nesting
func Combine[T Item](n *Nest[*Nest[T]]) *Nest[T] {
	var out []T
	for _, sub := range n.items {
		out = append(out, sub.items...)
	}
	return New(out...)
}

// Largest returns the most populous child nest, the first one on ties
func Largest[T Item](n *Nest[*Nest[T]]) (*Nest[T], bool) {
	var best *Nest[T]
	for _, sub := range n.items {
		if best == nil || sub.Len() > best.Len() {
			best = sub
		}
	}
	return best, best != nil
}

// Span is a closed vertical interval
type Span struct {
	Lo, Hi float64
}

// SlotY distributes items into vertical slots. The result is aligned with
// slots; an item lands in a slot when it lies strictly inside it.
func SlotY[T Item](n *Nest[T], slots []Span) []*Nest[T] {
	out := make([]*Nest[T], len(slots))
	for i, s := range slots {
		lo, hi := s.Lo, s.Hi
		out[i] = n.Filter(func(it T) bool {
			b := it.Bounds()
			return b.Y0 > lo && b.Y1 < hi
		})
	}
	return out
}

// Snap picks, for each template item, the item of n it overlaps vertically;
// when several overlap, the one with the smallest |dist| wins. Template items
// with no overlapping item are skipped.
func Snap[T, U Item](n *Nest[T], template *Nest[U], dist func(U, T) float64) *Nest[T] {
	var out []T
	for _, ref := range template.items {
		rb := ref.Bounds()
		matches := n.Filter(func(it T) bool {
			return it.Bounds().IntersectsY(rb)
		})
		if matches.Empty() {
			continue
		}
		best := matches.items[0]
		bestDist := math.Abs(dist(ref, best))
		for _, it := range matches.items[1:] {
			if d := math.Abs(dist(ref, it)); d < bestDist {
				best, bestDist = it, d
			}
		}
		out = append(out, best)
	}
	return New(out...)
}
