package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/physics"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

type Level struct {
	Name     string      `json:"name"`
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	TileSize float64     `json:"tile_size"`
	Bounded  bool        `json:"bounded"`
	Layers   []LayerData `json:"layers"`
	Entities []Entity    `json:"entities,omitempty"`
}

// LayerData is one layer as stored on disk. Rows holds one glyph per tile;
// Tiles holds raw tile type codes and is used when Rows is empty.
type LayerData struct {
	Name    string   `json:"name"`
	Physics bool     `json:"physics"`
	Hidden  bool     `json:"hidden,omitempty"`
	Tileset string   `json:"tileset,omitempty"`
	OffsetX float64  `json:"offset_x,omitempty"`
	OffsetY float64  `json:"offset_y,omitempty"`
	Rows    []string `json:"rows,omitempty"`
	Tiles   []int    `json:"tiles,omitempty"`
}

// Entity is a spawn point. Type names a prefab.
type Entity struct {
	Type  string         `json:"type"`
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// Load reads levels/<name> from disk when present, else from the embedded set.
func Load(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	if err != nil {
		data, err = LevelsFS.ReadFile(clean)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", clean, err)
		}
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", clean, err)
	}
	return lvl, nil
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidLevel, lvl.Width, lvl.Height)
	}
	if lvl.TileSize <= 0 {
		return nil, fmt.Errorf("%w: tile size %v", ErrInvalidLevel, lvl.TileSize)
	}
	for i, ld := range lvl.Layers {
		if err := ld.validate(lvl.Width, lvl.Height); err != nil {
			return nil, fmt.Errorf("%w: layer %d %q: %v", ErrInvalidLevel, i, ld.Name, err)
		}
	}
	return &lvl, nil
}

func (ld LayerData) validate(width, height int) error {
	if len(ld.Rows) > 0 {
		if len(ld.Rows) != height {
			return fmt.Errorf("%d rows, want %d", len(ld.Rows), height)
		}
		for y, row := range ld.Rows {
			runes := []rune(row)
			if len(runes) != width {
				return fmt.Errorf("row %d has %d tiles, want %d", y, len(runes), width)
			}
			for x, r := range runes {
				if _, ok := GlyphType(r); !ok {
					return fmt.Errorf("unknown glyph %q at (%d,%d)", r, x, y)
				}
			}
		}
		return nil
	}
	for i, code := range ld.Tiles {
		if code < 0 || code > 255 || !physics.TileType(code).Valid() {
			return fmt.Errorf("unknown tile code %d at %d", code, i)
		}
	}
	return nil
}

func (lvl *Level) TileSizeVec() cp.Vector {
	return cp.Vector{X: lvl.TileSize, Y: lvl.TileSize}
}

func (lvl *Level) WorldSize() cp.Vector {
	return cp.Vector{X: float64(lvl.Width) * lvl.TileSize, Y: float64(lvl.Height) * lvl.TileSize}
}

// BuildLayer turns the i-th layer into a grid.
func (lvl *Level) BuildLayer(i int) *Layer {
	ld := lvl.Layers[i]
	var tiles []TileInfo
	switch {
	case len(ld.Rows) > 0:
		tiles = make([]TileInfo, 0, lvl.Width*lvl.Height)
		for _, row := range ld.Rows {
			for _, r := range row {
				t, _ := GlyphType(r)
				tiles = append(tiles, ld.tileInfo(t))
			}
		}
	default:
		tiles = make([]TileInfo, 0, len(ld.Tiles))
		for _, code := range ld.Tiles {
			tiles = append(tiles, ld.tileInfo(physics.TileType(code)))
		}
	}

	layer := NewLayer(ld.Name, lvl.TileSizeVec(), lvl.Width, lvl.Height, tiles)
	layer.SetOffset(cp.Vector{X: ld.OffsetX, Y: ld.OffsetY})
	layer.SetHidden(ld.Hidden)
	return layer
}

func (ld LayerData) tileInfo(t physics.TileType) TileInfo {
	if t == physics.TileEmpty || ld.Tileset == "" {
		return TileInfo{Type: t}
	}
	return TileInfo{Sprite: ld.Tileset + "#" + t.String(), Type: t}
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if filepath.Ext(s) == "" {
		s += ".json"
	}
	return s
}
