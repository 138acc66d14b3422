package physics

import "github.com/milk9111/tilephysics/common"

// SlopeHeight returns the surface height above the tile's bottom edge at
// fraction w (clamped to [0,1]) across a tile of height h. Non-slope types
// have height 0.
func SlopeHeight(t TileType, w, h float64) float64 {
	w = common.Clamp01(w)
	switch t {
	case TileSlope01:
		return w * h
	case TileSlope10:
		return (1 - w) * h
	case TileSlope02:
		return 0.5 * w * h
	case TileSlope20:
		return 0.5 * (1 - w) * h
	case TileSlope12:
		return 0.5*(1-w)*h + 0.5*h
	case TileSlope21:
		return 0.5*w*h + 0.5*h
	default:
		return 0
	}
}
