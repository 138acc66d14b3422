package levels

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/physics"
)

// TileInfo is one grid cell: an opaque sprite reference for renderers and the
// collision type for the physics engine.
type TileInfo struct {
	Sprite string
	Type   physics.TileType
}

// Layer is a row-major tile grid. It satisfies physics.TileLayer; the engine
// samples it in world tile coordinates, so collision layers keep a zero offset.
type Layer struct {
	Name string

	tileSize cp.Vector
	width    int
	height   int
	offset   cp.Vector
	hidden   bool
	tiles    []TileInfo
}

// NewLayer builds a width x height layer. A tile slice of the wrong length
// is logged and replaced by an empty grid.
func NewLayer(name string, tileSize cp.Vector, width, height int, tiles []TileInfo) *Layer {
	width, height = max(width, 0), max(height, 0)
	if len(tiles) != width*height {
		log.Printf("levels: layer %q has %d tiles, want %dx%d; using an empty layer", name, len(tiles), width, height)
		tiles = make([]TileInfo, width*height)
	}
	return &Layer{
		Name:     name,
		tileSize: tileSize,
		width:    width,
		height:   height,
		tiles:    tiles,
	}
}

func (l *Layer) TileSize() cp.Vector { return l.tileSize }

func (l *Layer) MapSize() (width, height int) { return l.width, l.height }

func (l *Layer) WorldSize() cp.Vector {
	return cp.Vector{X: float64(l.width) * l.tileSize.X, Y: float64(l.height) * l.tileSize.Y}
}

func (l *Layer) Offset() cp.Vector          { return l.offset }
func (l *Layer) SetOffset(offset cp.Vector) { l.offset = offset }
func (l *Layer) Hidden() bool               { return l.hidden }
func (l *Layer) SetHidden(hidden bool)      { l.hidden = hidden }

func (l *Layer) inRange(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.width && y < l.height
}

// TileAt returns the cell at (x, y). Out of range cells report false.
func (l *Layer) TileAt(x, y int) (TileInfo, bool) {
	if !l.inRange(x, y) {
		return TileInfo{}, false
	}
	return l.tiles[y*l.width+x], true
}

// TileTypeAt returns TileEmpty outside the grid.
func (l *Layer) TileTypeAt(x, y int) physics.TileType {
	t, _ := l.TileAt(x, y)
	return t.Type
}

// SetTile overwrites a cell. Out of range writes are logged and ignored.
func (l *Layer) SetTile(x, y int, info TileInfo) bool {
	if !l.inRange(x, y) {
		log.Printf("levels: layer %q SetTile (%d,%d) out of range", l.Name, x, y)
		return false
	}
	l.tiles[y*l.width+x] = info
	return true
}

// TileTypeAtWorldPos maps a world position through the layer offset.
func (l *Layer) TileTypeAtWorldPos(pos cp.Vector) physics.TileType {
	if l.tileSize.X <= 0 || l.tileSize.Y <= 0 {
		return physics.TileEmpty
	}
	local := pos.Sub(l.offset)
	return l.TileTypeAt(common.FloorDiv(local.X, l.tileSize.X), common.FloorDiv(local.Y, l.tileSize.Y))
}
