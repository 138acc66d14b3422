package component

import "github.com/milk9111/tilephysics/levels"

// TileLayer holds one loaded level layer. Only layers with Collision set are
// registered with the physics engine.
type TileLayer struct {
	Layer     *levels.Layer
	Collision bool
}

var TileLayerComponent = NewComponent[TileLayer]()
