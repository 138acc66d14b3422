package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
)

// ShapeKind identifies the narrow-phase geometry of a collider.
type ShapeKind uint8

const (
	ShapeAABB ShapeKind = iota
	ShapeCircle

	shapeKindCount
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeAABB:
		return "aabb"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// Shape is a closed variant: Size is meaningful for ShapeAABB, Radius for
// ShapeCircle. A circle under a non-uniform scale keeps a round outline with
// the radius of its smaller scaled axis.
type Shape struct {
	Kind   ShapeKind
	Size   cp.Vector
	Radius float64
}

func NewAABBShape(size cp.Vector) Shape {
	return Shape{Kind: ShapeAABB, Size: size}
}

func NewCircleShape(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// AABBSize returns the size of the smallest box covering the shape.
func (s Shape) AABBSize() cp.Vector {
	switch s.Kind {
	case ShapeCircle:
		return cp.Vector{X: s.Radius * 2, Y: s.Radius * 2}
	default:
		return s.Size
	}
}

// AABBOverlap reports whether two boxes overlap. Touching edges do not count.
func AABBOverlap(aPos, aSize, bPos, bSize cp.Vector) bool {
	if aPos.X+aSize.X <= bPos.X || aPos.X >= bPos.X+bSize.X ||
		aPos.Y+aSize.Y <= bPos.Y || aPos.Y >= bPos.Y+bSize.Y {
		return false
	}
	return true
}

func RectOverlap(a, b common.Rect) bool {
	return AABBOverlap(a.Pos, a.Size, b.Pos, b.Size)
}

func CircleOverlap(aCenter cp.Vector, aRadius float64, bCenter cp.Vector, bRadius float64) bool {
	return aCenter.Sub(bCenter).Length() < aRadius+bRadius
}

func PointInCircle(point, center cp.Vector, radius float64) bool {
	return point.Sub(center).Length() < radius
}

type overlapFunc func(a, b common.Rect) bool

// overlapTable is indexed [a.Kind][b.Kind]. Boxes passed in are world AABBs;
// a circle is inscribed in its box.
var overlapTable = [shapeKindCount][shapeKindCount]overlapFunc{
	ShapeAABB: {
		ShapeAABB:   func(a, b common.Rect) bool { return true },
		ShapeCircle: boxCircleOverlap,
	},
	ShapeCircle: {
		ShapeAABB:   func(a, b common.Rect) bool { return boxCircleOverlap(b, a) },
		ShapeCircle: circleCircleOverlap,
	},
}

// ShapesOverlap runs the broad AABB rejection and then the narrow test for
// the pair of kinds.
func ShapesOverlap(aKind ShapeKind, a common.Rect, bKind ShapeKind, b common.Rect) bool {
	if !RectOverlap(a, b) {
		return false
	}
	if aKind >= shapeKindCount || bKind >= shapeKindCount {
		return false
	}
	return overlapTable[aKind][bKind](a, b)
}

// circleRadius is the radius of the circle inscribed in a world box. A
// non-uniform scale shrinks the circle to the smaller axis.
func circleRadius(box common.Rect) float64 {
	return min(box.Size.X, box.Size.Y) / 2
}

func circleCircleOverlap(a, b common.Rect) bool {
	return CircleOverlap(a.Center(), circleRadius(a), b.Center(), circleRadius(b))
}

func boxCircleOverlap(box, circle common.Rect) bool {
	center := circle.Center()
	nearest := cp.Vector{
		X: common.Clamp(center.X, box.Left(), box.Right()),
		Y: common.Clamp(center.Y, box.Top(), box.Bottom()),
	}
	return PointInCircle(nearest, center, circleRadius(circle))
}
