package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
)

type collidable struct {
	body      *Body
	owner     Owner
	transform Transform
	collider  *Collider
}

func (c collidable) box() common.Rect { return c.collider.WorldAABB(c.transform) }

func (c collidable) solid() bool { return c.owner.Tag() == SolidTag }

// collidables returns the enabled bodies with an active collider, in
// registration order.
func (e *Engine) collidables() []collidable {
	out := make([]collidable, 0, len(e.bodies))
	for _, b := range e.bodies {
		if !b.enabled {
			continue
		}
		t, c, ok := e.parts(b)
		if !ok || !c.active {
			continue
		}
		out = append(out, collidable{body: b, owner: b.owner, transform: t, collider: c})
	}
	return out
}

// resolveObjects tests every pair once. A body overlapping a "solid" tagged
// body is pushed out immediately; all other overlaps are recorded as pairs.
// With step false solid overlaps are left alone.
func (e *Engine) resolveObjects(step bool) {
	items := e.collidables()
	for i := 0; i < len(items); i++ {
		a := items[i]
		for j := i + 1; j < len(items); j++ {
			b := items[j]
			// Boxes are recomputed per pair so later pairs see earlier pushouts.
			boxA, boxB := a.box(), b.box()
			if !ShapesOverlap(a.collider.Kind(), boxA, b.collider.Kind(), boxB) {
				continue
			}

			aSolid, bSolid := a.solid(), b.solid()
			if aSolid != bSolid && !a.collider.trigger && !b.collider.trigger {
				if !step {
					continue
				}
				if aSolid {
					pushOutOfSolid(b, boxB, boxA)
				} else {
					pushOutOfSolid(a, boxA, boxB)
				}
				continue
			}

			e.pairs = append(e.pairs, CollisionPair{A: a.owner, B: b.owner})
		}
	}
}

// pushOutOfSolid moves mover out of solid along the axis of least overlap.
func pushOutOfSolid(mover collidable, moverBox, solidBox common.Rect) {
	d := moverBox.Center().Sub(solidBox.Center())
	overlapX := (moverBox.Size.X+solidBox.Size.X)/2 - math.Abs(d.X)
	overlapY := (moverBox.Size.Y+solidBox.Size.Y)/2 - math.Abs(d.Y)
	if overlapX < solidEpsilon && overlapY < solidEpsilon {
		return
	}

	b := mover.body
	var push cp.Vector
	if overlapX < overlapY {
		if d.X > 0 {
			push.X = overlapX
			if b.Velocity.X < 0 {
				b.Velocity.X = 0
				b.collidedLeft = true
			}
		} else {
			push.X = -overlapX
			if b.Velocity.X > 0 {
				b.Velocity.X = 0
				b.collidedRight = true
			}
		}
	} else {
		if d.Y > 0 {
			push.Y = overlapY
			if b.Velocity.Y < 0 {
				b.Velocity.Y = 0
				b.collidedAbove = true
			}
		} else {
			push.Y = -overlapY
			if b.Velocity.Y > 0 {
				b.Velocity.Y = 0
				b.collidedBelow = true
			}
		}
	}
	mover.transform.Translate(push)
}
