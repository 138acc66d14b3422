package physics

import (
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
)

// Alignment anchors a collider to its owner's transform origin.
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignTopLeft
	AlignTopCenter
	AlignTopRight
	AlignCenterLeft
	AlignCenter
	AlignCenterRight
	AlignBottomLeft
	AlignBottomCenter
	AlignBottomRight
)

var alignmentNames = map[string]Alignment{
	"":              AlignNone,
	"none":          AlignNone,
	"top_left":      AlignTopLeft,
	"top_center":    AlignTopCenter,
	"top_right":     AlignTopRight,
	"center_left":   AlignCenterLeft,
	"center":        AlignCenter,
	"center_right":  AlignCenterRight,
	"bottom_left":   AlignBottomLeft,
	"bottom_center": AlignBottomCenter,
	"bottom_right":  AlignBottomRight,
}

// ParseAlignment accepts snake_case names such as "bottom_center".
func ParseAlignment(s string) (Alignment, bool) {
	a, ok := alignmentNames[strings.ToLower(strings.TrimSpace(s))]
	return a, ok
}

// anchor returns the fraction of the collider size the origin sits at.
func (a Alignment) anchor() (fx, fy float64, ok bool) {
	switch a {
	case AlignTopLeft:
		return 0, 0, true
	case AlignTopCenter:
		return 0.5, 0, true
	case AlignTopRight:
		return 1, 0, true
	case AlignCenterLeft:
		return 0, 0.5, true
	case AlignCenter:
		return 0.5, 0.5, true
	case AlignCenterRight:
		return 1, 0.5, true
	case AlignBottomLeft:
		return 0, 1, true
	case AlignBottomCenter:
		return 0.5, 1, true
	case AlignBottomRight:
		return 1, 1, true
	default:
		return 0, 0, false
	}
}

// Collider attaches a shape to an owner. It never holds the owner; world
// placement is computed from the Transform passed in.
type Collider struct {
	shape     Shape
	aabbSize  cp.Vector
	offset    cp.Vector
	alignment Alignment
	trigger   bool
	active    bool
}

// NewCollider returns an active, non-trigger collider. Call UpdateOffset once
// the owner's scale is known.
func NewCollider(shape Shape, alignment Alignment) *Collider {
	return &Collider{
		shape:     shape,
		aabbSize:  shape.AABBSize(),
		alignment: alignment,
		active:    true,
	}
}

func (c *Collider) Shape() Shape        { return c.shape }
func (c *Collider) Kind() ShapeKind     { return c.shape.Kind }
func (c *Collider) AABBSize() cp.Vector { return c.aabbSize }
func (c *Collider) Offset() cp.Vector   { return c.offset }
func (c *Collider) Alignment() Alignment {
	return c.alignment
}
func (c *Collider) IsTrigger() bool { return c.trigger }
func (c *Collider) IsActive() bool  { return c.active }

func (c *Collider) SetTrigger(trigger bool) { c.trigger = trigger }
func (c *Collider) SetActive(active bool)   { c.active = active }

// SetOffset overrides the offset. It is recomputed on the next UpdateOffset
// unless the alignment is AlignNone.
func (c *Collider) SetOffset(offset cp.Vector) { c.offset = offset }

// SetShape replaces the shape and recomputes the offset for scale.
func (c *Collider) SetShape(shape Shape, scale cp.Vector) {
	c.shape = shape
	c.aabbSize = shape.AABBSize()
	c.UpdateOffset(scale)
}

func (c *Collider) SetAlignment(alignment Alignment, scale cp.Vector) {
	c.alignment = alignment
	c.UpdateOffset(scale)
}

// UpdateOffset derives the offset from the alignment and the owner's scale.
// It must be called whenever either changes.
func (c *Collider) UpdateOffset(scale cp.Vector) {
	if c.aabbSize.X <= 0 || c.aabbSize.Y <= 0 {
		c.offset = cp.Vector{}
		return
	}
	fx, fy, ok := c.alignment.anchor()
	if !ok {
		return
	}
	c.offset = common.MulVec(cp.Vector{X: -c.aabbSize.X * fx, Y: -c.aabbSize.Y * fy}, scale)
}

// WorldAABB returns the collider box in world space for the given transform.
func (c *Collider) WorldAABB(t Transform) common.Rect {
	if c == nil || t == nil {
		return common.Rect{}
	}
	return common.Rect{
		Pos:  t.Position().Add(c.offset),
		Size: common.MulVec(c.aabbSize, t.Scale()),
	}
}
