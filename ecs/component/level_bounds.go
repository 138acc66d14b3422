package component

import "github.com/milk9111/tilephysics/common"

// LevelBounds is the world rectangle bodies are clamped to. Only its left,
// top and right edges are enforced.
type LevelBounds struct {
	Bounds common.Rect
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
