package physics

import "github.com/milk9111/tilephysics/common"

// scanTileTriggers records one event per distinct trigger tile type each body
// covers, per layer. With step true it also sets the ladder flag.
func (e *Engine) scanTileTriggers(step bool) {
	for _, b := range e.bodies {
		if !b.enabled {
			continue
		}
		t, c, ok := e.parts(b)
		if !ok || !c.active || c.trigger {
			continue
		}
		box := c.WorldAABB(t)
		if box.Empty() {
			continue
		}

		for _, layer := range e.layers {
			seen, ok := coveredTileTypes(layer, box)
			if !ok {
				continue
			}
			if step && seen[TileLadder] {
				b.collidedLadder = true
			}
			for tt := range tileTypeCount {
				if seen[tt] && tt.IsTrigger() {
					e.triggers = append(e.triggers, TileTriggerEvent{Owner: b.owner, Type: tt})
				}
			}
		}
	}
}

// coveredTileTypes returns the set of tile types under box in layer.
func coveredTileTypes(layer TileLayer, box common.Rect) (seen [tileTypeCount]bool, ok bool) {
	ts := layer.TileSize()
	if ts.X <= 0 || ts.Y <= 0 {
		return seen, false
	}
	x0 := common.FloorDiv(box.Left(), ts.X)
	y0 := common.FloorDiv(box.Top(), ts.Y)
	x1 := max(common.FloorDiv(box.Right()-edgeTolerance, ts.X), x0)
	y1 := max(common.FloorDiv(box.Bottom()-edgeTolerance, ts.Y), y0)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if tt := layer.TileTypeAt(x, y); tt < tileTypeCount {
				seen[tt] = true
			}
		}
	}
	return seen, true
}
