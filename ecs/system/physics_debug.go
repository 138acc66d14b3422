package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/physics"
	"golang.org/x/image/colornames"
)

// View maps world pixels to screen pixels.
type View struct {
	Camera cp.Vector
	Zoom   float64
}

func (v View) toScreen(p cp.Vector) (float32, float32) {
	zoom := v.zoom()
	return float32((p.X - v.Camera.X) * zoom), float32((p.Y - v.Camera.Y) * zoom)
}

// visible is the world-space area the view covers on a screen of the given
// size.
func (v View) visible(screenW, screenH int) cp.BB {
	zoom := v.zoom()
	return common.Rect{Pos: v.Camera, Size: cp.Vector{X: float64(screenW) / zoom, Y: float64(screenH) / zoom}}.BB()
}

func (v View) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// FollowPlayer centers the view on the first player, kept inside bounds
// when the level has them.
func FollowPlayer(w *ecs.World, screenW, screenH int, zoom float64) View {
	view := View{Zoom: zoom}
	zoom = view.zoom()
	player, _, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return view
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return view
	}
	half := cp.Vector{X: float64(screenW) / zoom / 2, Y: float64(screenH) / zoom / 2}
	view.Camera = cp.Vector{X: t.X, Y: t.Y}.Sub(half)

	if _, lb, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		maxX := lb.Bounds.Pos.X + lb.Bounds.Size.X - 2*half.X
		maxY := lb.Bounds.Pos.Y + lb.Bounds.Size.Y - 2*half.Y
		view.Camera.X = common.Clamp(view.Camera.X, lb.Bounds.Pos.X, max(maxX, lb.Bounds.Pos.X))
		view.Camera.Y = common.Clamp(view.Camera.Y, lb.Bounds.Pos.Y, max(maxY, lb.Bounds.Pos.Y))
	}
	return view
}

var tileColors = map[physics.TileType]color.RGBA{
	physics.TileNormal:   colornames.Dimgray,
	physics.TileSolid:    colornames.Slategray,
	physics.TileUnisolid: colornames.Peru,
	physics.TileHazard:   colornames.Crimson,
	physics.TileLadder:   colornames.Goldenrod,
}

var slopeColor = colornames.Steelblue

// DrawLevel fills every non-empty tile of the visible layers with a color
// for its type. Slopes are drawn as their surface line.
func DrawLevel(w *ecs.World, screen *ebiten.Image, view View) {
	if w == nil || screen == nil {
		return
	}
	zoom := float32(view.zoom())
	ecs.ForEach(w, component.TileLayerComponent.Kind(), func(_ ecs.Entity, tl *component.TileLayer) {
		layer := tl.Layer
		if layer == nil || layer.Hidden() {
			return
		}
		ts := layer.TileSize()
		width, height := layer.MapSize()
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				tt := layer.TileTypeAt(x, y)
				if tt == physics.TileEmpty {
					continue
				}
				origin := cp.Vector{X: float64(x) * ts.X, Y: float64(y) * ts.Y}.Add(layer.Offset())
				sx, sy := view.toScreen(origin)
				if tt.IsSlope() {
					drawSlope(screen, view, tt, origin, ts)
					continue
				}
				c, ok := tileColors[tt]
				if !ok {
					continue
				}
				vector.FillRect(screen, sx, sy, float32(ts.X)*zoom, float32(ts.Y)*zoom, c, false)
			}
		}
	})
}

func drawSlope(screen *ebiten.Image, view View, tt physics.TileType, origin, ts cp.Vector) {
	bottom := origin.Y + ts.Y
	left := cp.Vector{X: origin.X, Y: bottom - physics.SlopeHeight(tt, 0, ts.Y)}
	right := cp.Vector{X: origin.X + ts.X, Y: bottom - physics.SlopeHeight(tt, 1, ts.Y)}
	x1, y1 := view.toScreen(left)
	x2, y2 := view.toScreen(right)
	vector.StrokeLine(screen, x1, y1, x2, y2, 2, slopeColor, false)
}

// DrawPhysicsDebug outlines every registered collider. Grounded bodies are
// green, bodies touching a wall or ceiling orange, triggers yellow and
// inactive colliders gray.
func DrawPhysicsDebug(w *ecs.World, engine *physics.Engine, screen *ebiten.Image, view View) {
	if w == nil || engine == nil || screen == nil {
		return
	}
	zoom := float32(view.zoom())
	visible := view.visible(screen.Bounds().Dx(), screen.Bounds().Dy())

	for _, body := range engine.Bodies() {
		owner := body.Owner()
		if owner == nil {
			continue
		}
		t := owner.Transform()
		c := owner.Collider()
		if t == nil || c == nil {
			continue
		}
		box := c.WorldAABB(t)
		if !visible.Intersects(box.BB()) {
			continue
		}
		clr := debugColliderColor(body, c)
		sx, sy := view.toScreen(box.Pos)
		switch c.Kind() {
		case physics.ShapeCircle:
			r := float32(box.Size.X/2) * zoom
			vector.StrokeCircle(screen, sx+r, sy+r, r, 1, clr, false)
		default:
			vector.StrokeRect(screen, sx, sy, float32(box.Size.X)*zoom, float32(box.Size.Y)*zoom, 1, clr, false)
		}
	}

	if bounds, ok := engine.WorldBounds(); ok {
		sx, sy := view.toScreen(bounds.Pos)
		vector.StrokeRect(screen, sx, sy, float32(bounds.Size.X)*zoom, float32(bounds.Size.Y)*zoom, 1, colornames.Magenta, false)
	}
}

func debugColliderColor(b *physics.Body, c *physics.Collider) color.Color {
	switch {
	case !c.IsActive() || !b.Enabled():
		return colornames.Gray
	case c.IsTrigger():
		return colornames.Yellow
	case b.CollidedLeft() || b.CollidedRight() || b.CollidedAbove():
		return colornames.Orange
	case b.CollidedBelow():
		return colornames.Lime
	default:
		return colornames.White
	}
}

// DrawPlayerStateDebug prints the first player's contact flags and health.
func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, _, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	hp := "-"
	if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok {
		hp = fmt.Sprintf("%d/%d", h.Current, h.Max)
	}
	text := fmt.Sprintf("Velocity: %.1f, %.1f\nBelow: %v Above: %v\nLeft: %v Right: %v\nLadder: %v Top: %v\nHealth: %s",
		body.Velocity.X, body.Velocity.Y,
		body.CollidedBelow(), body.CollidedAbove(),
		body.CollidedLeft(), body.CollidedRight(),
		body.CollidedLadder(), body.OnTopLadder(),
		hp)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}
