package physics

import "github.com/jakecoffman/cp"

// TileType is the collision behaviour of a tile.
type TileType uint8

const (
	TileEmpty TileType = iota
	TileNormal
	TileSolid
	TileUnisolid
	TileSlope01 // left 0, right 1
	TileSlope10 // left 1, right 0
	TileSlope02 // left 0, right 1/2
	TileSlope20 // left 1/2, right 0
	TileSlope12 // left 1, right 1/2
	TileSlope21 // left 1/2, right 1
	TileHazard
	TileLadder

	tileTypeCount
)

var tileTypeNames = [tileTypeCount]string{
	TileEmpty:    "empty",
	TileNormal:   "normal",
	TileSolid:    "solid",
	TileUnisolid: "unisolid",
	TileSlope01:  "slope_0_1",
	TileSlope10:  "slope_1_0",
	TileSlope02:  "slope_0_2",
	TileSlope20:  "slope_2_0",
	TileSlope12:  "slope_1_2",
	TileSlope21:  "slope_2_1",
	TileHazard:   "hazard",
	TileLadder:   "ladder",
}

func (t TileType) String() string {
	if t >= tileTypeCount {
		return "unknown"
	}
	return tileTypeNames[t]
}

// ParseTileType is the inverse of String.
func ParseTileType(s string) (TileType, bool) {
	for i, name := range tileTypeNames {
		if name == s {
			return TileType(i), true
		}
	}
	return TileEmpty, false
}

func (t TileType) Valid() bool {
	return t < tileTypeCount
}

func (t TileType) IsSlope() bool {
	return t >= TileSlope01 && t <= TileSlope21
}

// IsTrigger reports whether overlapping the tile emits a trigger event.
func (t TileType) IsTrigger() bool {
	return t == TileHazard
}

// blocksFall reports whether the tile stops downward motion outright.
func (t TileType) blocksFall() bool {
	return t == TileSolid || t == TileUnisolid
}

// TileLayer is the read-only grid the engine collides against.
type TileLayer interface {
	TileSize() cp.Vector
	// TileTypeAt returns TileEmpty for coordinates outside the map.
	TileTypeAt(x, y int) TileType
	WorldSize() cp.Vector
}
