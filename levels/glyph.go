package levels

import "github.com/milk9111/tilephysics/physics"

var glyphTypes = map[rune]physics.TileType{
	'.':  physics.TileEmpty,
	'n':  physics.TileNormal,
	'#':  physics.TileSolid,
	'=':  physics.TileUnisolid,
	'/':  physics.TileSlope01,
	'\\': physics.TileSlope10,
	'<':  physics.TileSlope02,
	'>':  physics.TileSlope20,
	'[':  physics.TileSlope12,
	']':  physics.TileSlope21,
	'^':  physics.TileHazard,
	'H':  physics.TileLadder,
}

// GlyphType maps a level row character to its tile type.
//
//	.  empty      #  solid      =  one-way platform
//	/  slope 0-1  \  slope 1-0  <  slope 0-1/2  >  slope 1/2-0
//	[  slope 1-1/2            ]  slope 1/2-1
//	^  hazard     H  ladder     n  decoration
func GlyphType(r rune) (physics.TileType, bool) {
	t, ok := glyphTypes[r]
	return t, ok
}

// Glyph is the inverse of GlyphType.
func Glyph(t physics.TileType) rune {
	for r, tt := range glyphTypes {
		if tt == t {
			return r
		}
	}
	return '?'
}
