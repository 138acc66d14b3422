package physics

import "github.com/jakecoffman/cp"

// clampToWorldBounds keeps b inside the left, top and right edges of the
// world bounds. The bottom stays open so bodies can fall out of the level.
func (e *Engine) clampToWorldBounds(b *Body) {
	if e.worldBounds == nil {
		return
	}
	t, c, ok := e.parts(b)
	if !ok || !c.active || c.trigger {
		return
	}
	box := c.WorldAABB(t)
	if box.Empty() {
		return
	}

	bounds := *e.worldBounds
	var delta cp.Vector
	switch {
	case box.Left() < bounds.Left():
		delta.X = bounds.Left() - box.Left()
		b.Velocity.X = 0
		b.collidedLeft = true
	case box.Right() > bounds.Right():
		delta.X = bounds.Right() - box.Right()
		b.Velocity.X = 0
		b.collidedRight = true
	}
	if box.Top() < bounds.Top() {
		delta.Y = bounds.Top() - box.Top()
		b.Velocity.Y = 0
		b.collidedAbove = true
	}

	if delta != (cp.Vector{}) {
		t.Translate(delta)
	}
}
