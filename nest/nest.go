package nest

import (
	"math"
	"sort"

	"github.com/tsawler/gravy/model"
)

// Item is anything with a bounding box that can be moved. *model.Word,
// *model.Line and *Nest[T] all satisfy it. Items are expected to be
// pointers: nests compare them by identity.
type Item interface {
	Bounds() model.Box
	Translate(dx, dy float64)
}

// Key extracts one coordinate from a box
type Key func(model.Box) float64

// Common keys
var (
	X0   Key = func(b model.Box) float64 { return b.X0 }
	X1   Key = func(b model.Box) float64 { return b.X1 }
	Y0   Key = func(b model.Box) float64 { return b.Y0 }
	Y1   Key = func(b model.Box) float64 { return b.Y1 }
	MidX Key = model.Box.MidX
	MidY Key = model.Box.MidY
	W    Key = model.Box.Width
	H    Key = model.Box.Height
)

// boxer is implemented by items whose box may be absent
type boxer interface {
	Box() (model.Box, bool)
}

// walker is implemented by nests so operations can reach leaf items
type walker interface {
	walk(seen map[Item]bool, fn func(Item))
	refresh()
}

// Nest is an ordered collection of items with an aggregate bounding box that
// is recomputed after every structural change. An empty nest has no box.
type Nest[T Item] struct {
	items []T
	box   model.Box
	ok    bool
}

// New creates a nest holding the given items in order
func New[T Item](items ...T) *Nest[T] {
	n := &Nest[T]{items: append([]T(nil), items...)}
	n.reset()
	return n
}

func (n *Nest[T]) reset() {
	n.box = model.Box{}
	n.ok = false
	for _, it := range n.items {
		b, ok := boundsOf(it)
		if !ok {
			continue
		}
		if !n.ok {
			n.box, n.ok = b, true
			continue
		}
		n.box = n.box.Union(b)
	}
}

func boundsOf(it Item) (model.Box, bool) {
	if b, ok := any(it).(boxer); ok {
		return b.Box()
	}
	return it.Bounds(), true
}

// Len returns the number of items
func (n *Nest[T]) Len() int {
	return len(n.items)
}

// Empty reports whether the nest holds no items
func (n *Nest[T]) Empty() bool {
	return len(n.items) == 0
}

// At returns the i-th item
func (n *Nest[T]) At(i int) T {
	return n.items[i]
}

// First returns the first item
func (n *Nest[T]) First() (T, bool) {
	var zero T
	if len(n.items) == 0 {
		return zero, false
	}
	return n.items[0], true
}

// Last returns the last item
func (n *Nest[T]) Last() (T, bool) {
	var zero T
	if len(n.items) == 0 {
		return zero, false
	}
	return n.items[len(n.items)-1], true
}

// Items returns a copy of the items
func (n *Nest[T]) Items() []T {
	return append([]T(nil), n.items...)
}

// Box returns the aggregate box; ok is false for an empty nest.
func (n *Nest[T]) Box() (model.Box, bool) {
	return n.box, n.ok
}

// Bounds returns the aggregate box, or the zero box when empty. Callers
// that may see empty nests should use Box or Empty first.
func (n *Nest[T]) Bounds() model.Box {
	return n.box
}

// Copy returns a shallow copy sharing the same items
func (n *Nest[T]) Copy() *Nest[T] {
	return New(n.items...)
}

// Append adds items at the end
func (n *Nest[T]) Append(items ...T) {
	n.items = append(n.items, items...)
	n.reset()
}

// Insert places an item at index i
func (n *Nest[T]) Insert(i int, item T) {
	n.items = append(n.items, item)
	copy(n.items[i+1:], n.items[i:])
	n.items[i] = item
	n.reset()
}

// Delete removes the item at index i
func (n *Nest[T]) Delete(i int) {
	n.items = append(n.items[:i], n.items[i+1:]...)
	n.reset()
}

// Set replaces the item at index i
func (n *Nest[T]) Set(i int, item T) {
	n.items[i] = item
	n.reset()
}

// Index returns the position of item by identity, or -1
func (n *Nest[T]) Index(item T) int {
	for i, it := range n.items {
		if any(it) == any(item) {
			return i
		}
	}
	return -1
}

// Contains reports whether item is held by identity
func (n *Nest[T]) Contains(item T) bool {
	return n.Index(item) >= 0
}

// Translate moves every leaf item once by (dx, dy); see Offset.
func (n *Nest[T]) Translate(dx, dy float64) {
	n.Offset(dx, dy)
}

// Offset translates every leaf item by (dx, dy), descending into nested
// nests. A leaf shared by several children moves only once. Boxes of every
// nested nest are recomputed.
func (n *Nest[T]) Offset(dx, dy float64) {
	n.walk(make(map[Item]bool), func(it Item) {
		it.Translate(dx, dy)
	})
	n.refresh()
}

func (n *Nest[T]) walk(seen map[Item]bool, fn func(Item)) {
	for _, it := range n.items {
		if w, ok := any(it).(walker); ok {
			w.walk(seen, fn)
			continue
		}
		if seen[it] {
			continue
		}
		seen[it] = true
		fn(it)
	}
}

func (n *Nest[T]) refresh() {
	for _, it := range n.items {
		if w, ok := any(it).(walker); ok {
			w.refresh()
		}
	}
	n.reset()
}

// Sort orders the items in place with a stable sort
func (n *Nest[T]) Sort(less func(a, b T) bool) {
	sort.SliceStable(n.items, func(i, j int) bool {
		return less(n.items[i], n.items[j])
	})
}

// SortBy returns a new nest ordered by key, descending if desc
func (n *Nest[T]) SortBy(key Key, desc bool) *Nest[T] {
	out := n.Copy()
	out.Sort(func(a, b T) bool {
		ka, kb := key(a.Bounds()), key(b.Bounds())
		if desc {
			return ka > kb
		}
		return ka < kb
	})
	return out
}

// Reverse returns a new nest in reverse order
func (n *Nest[T]) Reverse() *Nest[T] {
	out := make([]T, len(n.items))
	for i, it := range n.items {
		out[len(out)-1-i] = it
	}
	return New(out...)
}

// Filter returns the items satisfying pred
func (n *Nest[T]) Filter(pred func(T) bool) *Nest[T] {
	var out []T
	for _, it := range n.items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return New(out...)
}

// Split partitions the nest into matching and non-matching items, each
// keeping the original order.
func (n *Nest[T]) Split(pred func(T) bool) (*Nest[T], *Nest[T]) {
	var in, out []T
	for _, it := range n.items {
		if pred(it) {
			in = append(in, it)
		} else {
			out = append(out, it)
		}
	}
	return New(in...), New(out...)
}

// Bound narrows a Slice window
type Bound func(*window)

type window struct {
	x0, x1, y0, y1 float64
}

// MinX sets the left edge of a Slice window
func MinX(v float64) Bound { return func(w *window) { w.x0 = v } }

// MaxX sets the right edge of a Slice window
func MaxX(v float64) Bound { return func(w *window) { w.x1 = v } }

// MinY sets the bottom edge of a Slice window
func MinY(v float64) Bound { return func(w *window) { w.y0 = v } }

// MaxY sets the top edge of a Slice window
func MaxY(v float64) Bound { return func(w *window) { w.y1 = v } }

// Slice returns the items lying strictly inside a window. Unset edges
// default to the nest's own box widened by one unit, so an unbounded slice
// returns every item.
func (n *Nest[T]) Slice(bounds ...Bound) *Nest[T] {
	if !n.ok {
		return New[T]()
	}
	w := window{x0: n.box.X0 - 1, x1: n.box.X1 + 1, y0: n.box.Y0 - 1, y1: n.box.Y1 + 1}
	for _, b := range bounds {
		b(&w)
	}
	return n.Filter(func(it T) bool {
		b := it.Bounds()
		return b.X0 > w.x0 && b.X1 < w.x1 && b.Y0 > w.y0 && b.Y1 < w.y1
	})
}

// Delta applies fn to each consecutive pair in the current order
func (n *Nest[T]) Delta(fn func(a, b T) float64) []float64 {
	if len(n.items) < 2 {
		return nil
	}
	out := make([]float64, 0, len(n.items)-1)
	for i := 0; i < len(n.items)-1; i++ {
		out = append(out, fn(n.items[i], n.items[i+1]))
	}
	return out
}

// Values returns key applied to every item's box
func (n *Nest[T]) Values(key Key) []float64 {
	out := make([]float64, len(n.items))
	for i, it := range n.items {
		out[i] = key(it.Bounds())
	}
	return out
}

// Agg returns a statistic over key; ok is false for an empty nest
func (n *Nest[T]) Agg(key Key, stat Stat) (float64, bool) {
	if len(n.items) == 0 {
		return 0, false
	}
	return stat.Of(n.Values(key)), true
}

// Approximate returns the item whose key is closest to v, the first one
// on ties
func (n *Nest[T]) Approximate(key Key, v float64) (T, bool) {
	var best T
	found := false
	bestDist := math.Inf(1)
	for _, it := range n.items {
		d := math.Abs(key(it.Bounds()) - v)
		if d < bestDist {
			best, bestDist, found = it, d, true
		}
	}
	return best, found
}

// FillYGaps stretches the vertical extent of each item to fill the gaps
// between neighbours, returning the items ordered by bottom edge with one
// box per item. The first box starts at lo and the last ends at hi. In
// between, an item extends symmetrically about its midpoint from where its
// lower neighbour ended, unless that would pass the midpoint between its own
// and the next item's centres, where it stops. Boxes never overlap.
func (n *Nest[T]) FillYGaps(lo, hi float64) (*Nest[T], []model.Box) {
	sorted := n.SortBy(Y0, false)
	boxes := make([]model.Box, sorted.Len())

	prev := lo
	for i, it := range sorted.items {
		b := it.Bounds()
		mid := b.MidY()
		y0 := prev

		var y1 float64
		if i == len(sorted.items)-1 {
			y1 = hi
		} else {
			next := sorted.items[i+1].Bounds().MidY()
			y1 = math.Min(mid+(mid-y0), (mid+next)/2)
		}
		if y1 < y0 {
			y1 = y0
		}

		boxes[i] = b.WithY(y0, y1)
		prev = y1
	}

	return sorted, boxes
}
