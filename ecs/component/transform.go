package component

import "github.com/jakecoffman/cp"

// Transform is an entity's position in world pixels.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

func NewTransform(x, y float64) *Transform {
	return &Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}
}

// Scale treats a zero axis as 1.
func (t *Transform) Scale() cp.Vector {
	s := cp.Vector{X: t.ScaleX, Y: t.ScaleY}
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	return s
}

var TransformComponent = NewComponent[Transform]()
