package common

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned rectangle in screen space: Pos is the top-left
// corner and y grows downward.
type Rect struct {
	Pos  cp.Vector
	Size cp.Vector
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{Pos: cp.Vector{X: x, Y: y}, Size: cp.Vector{X: w, Y: h}}
}

func (r Rect) Left() float64   { return r.Pos.X }
func (r Rect) Top() float64    { return r.Pos.Y }
func (r Rect) Right() float64  { return r.Pos.X + r.Size.X }
func (r Rect) Bottom() float64 { return r.Pos.Y + r.Size.Y }

func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.Pos.X + r.Size.X/2, Y: r.Pos.Y + r.Size.Y/2}
}

// Empty reports whether either side is non-positive.
func (r Rect) Empty() bool {
	return r.Size.X <= 0 || r.Size.Y <= 0
}

// Intersects uses open boundaries: rectangles that only share an edge do not
// intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.Left() < other.Right() &&
		r.Right() > other.Left() &&
		r.Top() < other.Bottom() &&
		r.Bottom() > other.Top()
}

// BB converts to a Chipmunk bounding box. cp uses y-up naming, so B holds the
// smaller y (the screen-space top) and T the larger.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.Left(), B: r.Top(), R: r.Right(), T: r.Bottom()}
}
