package model

import "math"

// Orientation classifies a box or an alignment axis
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "v"
	}
	return "h"
}

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Box represents a bounding box by its edges.
// Y grows upwards (PDF coordinate system): Y0 is the bottom, Y1 the top.
type Box struct {
	X0 float64 // Left
	X1 float64 // Right
	Y0 float64 // Bottom
	Y1 float64 // Top
}

// NewBox creates a bounding box from two corners in any order
func NewBox(x0, x1, y0, y1 float64) Box {
	return Box{
		X0: math.Min(x0, x1),
		X1: math.Max(x0, x1),
		Y0: math.Min(y0, y1),
		Y1: math.Max(y0, y1),
	}
}

// MidX returns the horizontal midpoint
func (b Box) MidX() float64 {
	return (b.X0 + b.X1) / 2
}

// MidY returns the vertical midpoint
func (b Box) MidY() float64 {
	return (b.Y0 + b.Y1) / 2
}

// Width returns the horizontal extent
func (b Box) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent
func (b Box) Height() float64 {
	return b.Y1 - b.Y0
}

// Center returns the center point
func (b Box) Center() Point {
	return Point{X: b.MidX(), Y: b.MidY()}
}

// Orientation is Vertical iff the box is taller than it is wide.
func (b Box) Orientation() Orientation {
	if b.Height() > b.Width() {
		return Vertical
	}
	return Horizontal
}

// Valid reports whether the edges are finite and ordered
func (b Box) Valid() bool {
	for _, v := range []float64{b.X0, b.X1, b.Y0, b.Y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.X0 <= b.X1 && b.Y0 <= b.Y1
}

// Intersects reports strict overlap: boxes that merely touch do not intersect.
func (b Box) Intersects(other Box) bool {
	return b.IntersectsX(other) && b.IntersectsY(other)
}

// IntersectsX reports strict overlap of the horizontal ranges only
func (b Box) IntersectsX(other Box) bool {
	return !(b.X1 <= other.X0 || b.X0 >= other.X1)
}

// IntersectsY reports strict overlap of the vertical ranges only
func (b Box) IntersectsY(other Box) bool {
	return !(b.Y1 <= other.Y0 || b.Y0 >= other.Y1)
}

// Inside reports whether b lies strictly within other
func (b Box) Inside(other Box) bool {
	return b.X0 > other.X0 && b.X1 < other.X1 && b.Y0 > other.Y0 && b.Y1 < other.Y1
}

// Union returns the smallest box enclosing both boxes
func (b Box) Union(other Box) Box {
	return Box{
		X0: math.Min(b.X0, other.X0),
		X1: math.Max(b.X1, other.X1),
		Y0: math.Min(b.Y0, other.Y0),
		Y1: math.Max(b.Y1, other.Y1),
	}
}

// Shift returns the box translated by (dx, dy)
func (b Box) Shift(dx, dy float64) Box {
	return Box{X0: b.X0 + dx, X1: b.X1 + dx, Y0: b.Y0 + dy, Y1: b.Y1 + dy}
}

// Expand expands the bounding box by a margin on all sides
func (b Box) Expand(margin float64) Box {
	return Box{
		X0: b.X0 - margin,
		X1: b.X1 + margin,
		Y0: b.Y0 - margin,
		Y1: b.Y1 + margin,
	}
}

// Squash collapses the box onto its midline along the given axis: Vertical
// collapses x (a thin vertical rectangle becomes a vertical line), Horizontal
// collapses y.
func (b Box) Squash(axis Orientation) Box {
	if axis == Vertical {
		mid := b.MidX()
		b.X0, b.X1 = mid, mid
		return b
	}
	mid := b.MidY()
	b.Y0, b.Y1 = mid, mid
	return b
}

// WithY returns a copy with the vertical extent replaced
func (b Box) WithY(y0, y1 float64) Box {
	b.Y0, b.Y1 = y0, y1
	return b
}

// WithX returns a copy with the horizontal extent replaced
func (b Box) WithX(x0, x1 float64) Box {
	b.X0, b.X1 = x0, x1
	return b
}

// Area returns the area of the bounding box
func (b Box) Area() float64 {
	return b.Width() * b.Height()
}
