package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
)

// tileSweep carries one body's resolution state across the registered layers.
// box is the body's world AABB before the move; pos is the candidate top-left.
type tileSweep struct {
	body *Body
	box  common.Rect
	pos  cp.Vector
}

// resolveTiles moves b by velocity*dt, clamping against every registered
// layer, X axis first. Every path ends with the velocity speed-clamped.
func (e *Engine) resolveTiles(b *Body, dt float64) {
	t, c, ok := e.parts(b)
	if !ok {
		e.clampVelocity(b)
		return
	}

	ds := b.Velocity.Mult(dt)
	box := c.WorldAABB(t)
	if !c.active || c.trigger || box.Empty() {
		t.Translate(ds)
		e.clampVelocity(b)
		return
	}

	s := &tileSweep{body: b, box: box, pos: box.Pos.Add(ds)}
	for _, layer := range e.layers {
		ts := layer.TileSize()
		if ts.X <= 0 || ts.Y <= 0 {
			continue
		}
		switch {
		case ds.X > 0:
			s.moveRight(layer, ts)
		case ds.X < 0:
			s.moveLeft(layer, ts)
		}
		switch {
		case ds.Y > 0:
			s.moveDown(layer, ts)
		case ds.Y < 0:
			s.moveUp(layer, ts)
		}
	}

	t.Translate(s.pos.Sub(box.Pos))
	e.clampVelocity(b)
}

// rows returns the tile rows covered by the pre-move box.
func (s *tileSweep) rows(ts cp.Vector) (top, bottom int) {
	return common.FloorDiv(s.box.Top(), ts.Y), common.FloorDiv(s.box.Bottom()-edgeTolerance, ts.Y)
}

// cols returns the tile columns covered by the pre-move box.
func (s *tileSweep) cols(ts cp.Vector) (left, right int) {
	return common.FloorDiv(s.box.Left(), ts.X), common.FloorDiv(s.box.Right()-edgeTolerance, ts.X)
}

func (s *tileSweep) moveRight(layer TileLayer, ts cp.Vector) {
	w := s.box.Size.X
	end := common.FloorDiv(s.pos.X+w, ts.X)
	start := min(common.FloorDiv(s.box.Right()-edgeTolerance, ts.X)+1, end)
	top, bottom := s.rows(ts)

	for tx := start; tx <= end; tx++ {
		if layer.TileTypeAt(tx, top) == TileSolid || layer.TileTypeAt(tx, bottom) == TileSolid {
			s.body.Velocity.X = 0
			s.pos.X = float64(tx)*ts.X - w
			s.body.collidedRight = true
			return
		}
	}

	s.rideSlope(layer, ts, end, bottom, s.pos.X+w-float64(end)*ts.X)
}

func (s *tileSweep) moveLeft(layer TileLayer, ts cp.Vector) {
	end := common.FloorDiv(s.pos.X, ts.X)
	start := max(common.FloorDiv(s.box.Left(), ts.X)-1, end)
	top, bottom := s.rows(ts)

	for tx := start; tx >= end; tx-- {
		if layer.TileTypeAt(tx, top) == TileSolid || layer.TileTypeAt(tx, bottom) == TileSolid {
			s.body.Velocity.X = 0
			s.pos.X = float64(tx+1) * ts.X
			s.body.collidedLeft = true
			return
		}
	}

	s.rideSlope(layer, ts, end, bottom, s.pos.X-float64(end)*ts.X)
}

// rideSlope lifts the candidate position onto the slope surface of tile
// (tx, ty) when the body would sink into it while moving sideways. local is
// the penetration into the tile measured from its left edge.
func (s *tileSweep) rideSlope(layer TileLayer, ts cp.Vector, tx, ty int, local float64) {
	tt := layer.TileTypeAt(tx, ty)
	if !tt.IsSlope() {
		return
	}
	floor := float64(ty+1)*ts.Y - SlopeHeight(tt, local/ts.X, ts.Y)
	h := s.box.Size.Y
	if s.pos.Y+h > floor {
		s.pos.Y = floor - h
		s.body.collidedBelow = true
	}
}

func (s *tileSweep) moveDown(layer TileLayer, ts cp.Vector) {
	h := s.box.Size.Y
	end := common.FloorDiv(s.pos.Y+h, ts.Y)
	start := min(common.FloorDiv(s.box.Bottom()-edgeTolerance, ts.Y)+1, end)
	left, right := s.cols(ts)

	for ty := start; ty <= end; ty++ {
		if layer.TileTypeAt(left, ty).blocksFall() || layer.TileTypeAt(right, ty).blocksFall() {
			s.land(float64(ty)*ts.Y - h)
			return
		}
		if s.landOnLadderTop(layer, ts, left, right, ty) {
			return
		}
	}

	// Slope heights are sampled at the pre-move X of each column.
	leftTile := layer.TileTypeAt(left, end)
	rightTile := layer.TileTypeAt(right, end)
	height := max(
		SlopeHeight(leftTile, (s.box.Left()-float64(left)*ts.X)/ts.X, ts.Y),
		SlopeHeight(rightTile, (s.box.Right()-float64(right)*ts.X)/ts.X, ts.Y),
	)
	if !leftTile.IsSlope() && !rightTile.IsSlope() {
		return
	}
	floor := float64(end+1)*ts.Y - height
	if s.pos.Y+h > floor {
		s.land(floor - h)
	}
}

// landOnLadderTop stops a falling body on the top rung of a ladder. Bodies
// without gravity are climbing and pass through.
func (s *tileSweep) landOnLadderTop(layer TileLayer, ts cp.Vector, left, right, ty int) bool {
	if !s.body.useGravity {
		return false
	}
	if layer.TileTypeAt(left, ty) != TileLadder || layer.TileTypeAt(right, ty) != TileLadder {
		return false
	}
	if layer.TileTypeAt(left, ty-1) == TileLadder || layer.TileTypeAt(right, ty-1) == TileLadder {
		return false
	}
	s.land(float64(ty)*ts.Y - s.box.Size.Y)
	s.body.onTopLadder = true
	return true
}

func (s *tileSweep) land(y float64) {
	s.pos.Y = y
	s.body.Velocity.Y = 0
	s.body.collidedBelow = true
}

func (s *tileSweep) moveUp(layer TileLayer, ts cp.Vector) {
	end := common.FloorDiv(s.pos.Y, ts.Y)
	start := max(common.FloorDiv(s.box.Top(), ts.Y)-1, end)
	left, right := s.cols(ts)

	for ty := start; ty >= end; ty-- {
		if layer.TileTypeAt(left, ty) == TileSolid || layer.TileTypeAt(right, ty) == TileSolid {
			s.pos.Y = float64(ty+1) * ts.Y
			s.body.Velocity.Y = 0
			s.body.collidedAbove = true
			return
		}
	}
}
