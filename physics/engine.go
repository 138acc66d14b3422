package physics

import (
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
)

const (
	DefaultMaxSpeed = 500.0

	// edgeTolerance keeps far edges (right, bottom) from sampling the next
	// tile when they sit exactly on a tile boundary.
	edgeTolerance = 1.0

	// solidEpsilon is the smallest overlap worth pushing out of.
	solidEpsilon = 0.1
)

var DefaultGravity = cp.Vector{X: 0, Y: 980}

type Config struct {
	Gravity  cp.Vector
	MaxSpeed float64
	// WorldBounds is optional. Only its left, top and right edges clamp.
	WorldBounds *common.Rect
}

func DefaultConfig() Config {
	return Config{Gravity: DefaultGravity, MaxSpeed: DefaultMaxSpeed}
}

// CollisionPair is an overlap between two bodies that was left for game
// logic to resolve. Valid until the next Update.
type CollisionPair struct {
	A, B Owner
}

// TileTriggerEvent reports that a body touched a trigger tile this tick.
type TileTriggerEvent struct {
	Owner Owner
	Type  TileType
}

// Engine steps registered bodies against registered tile layers. It never
// owns bodies, owners or layers; membership is explicit.
type Engine struct {
	bodies []*Body
	layers []TileLayer

	gravity     cp.Vector
	maxSpeed    float64
	worldBounds *common.Rect

	pairs    []CollisionPair
	triggers []TileTriggerEvent

	// warned tracks bodies whose missing parts were already logged.
	warned map[*Body]struct{}
}

func NewEngine(cfg Config) *Engine {
	e := &Engine{
		gravity: cfg.Gravity,
		warned:  make(map[*Body]struct{}),
	}
	e.SetMaxSpeed(cfg.MaxSpeed)
	if cfg.WorldBounds != nil {
		e.SetWorldBounds(*cfg.WorldBounds)
	}
	return e
}

func (e *Engine) RegisterBody(b *Body) {
	if b == nil {
		logger.Println("RegisterBody: nil body ignored")
		return
	}
	if slices.Contains(e.bodies, b) {
		logger.Println("RegisterBody: body already registered")
		return
	}
	e.bodies = append(e.bodies, b)
}

// UnregisterBody removes b by identity. Removing an absent body only warns.
func (e *Engine) UnregisterBody(b *Body) {
	i := slices.Index(e.bodies, b)
	if i < 0 {
		logger.Println("UnregisterBody: body not registered")
		return
	}
	e.bodies = slices.Delete(e.bodies, i, i+1)
	delete(e.warned, b)
}

func (e *Engine) RegisterTileLayer(layer TileLayer) {
	if layer == nil {
		logger.Println("RegisterTileLayer: nil layer ignored")
		return
	}
	if slices.Contains(e.layers, layer) {
		logger.Println("RegisterTileLayer: layer already registered")
		return
	}
	e.layers = append(e.layers, layer)
}

func (e *Engine) UnregisterTileLayer(layer TileLayer) {
	i := slices.Index(e.layers, layer)
	if i < 0 {
		logger.Println("UnregisterTileLayer: layer not registered")
		return
	}
	e.layers = slices.Delete(e.layers, i, i+1)
}

// Bodies returns the registered bodies in registration order.
func (e *Engine) Bodies() []*Body { return slices.Clone(e.bodies) }

func (e *Engine) TileLayers() []TileLayer { return slices.Clone(e.layers) }

func (e *Engine) Gravity() cp.Vector           { return e.gravity }
func (e *Engine) SetGravity(gravity cp.Vector) { e.gravity = gravity }
func (e *Engine) MaxSpeed() float64            { return e.maxSpeed }
func (e *Engine) SetWorldBounds(r common.Rect) { e.worldBounds = &r }
func (e *Engine) ClearWorldBounds()            { e.worldBounds = nil }

// SetMaxSpeed stores the magnitude of maxSpeed.
func (e *Engine) SetMaxSpeed(maxSpeed float64) {
	if maxSpeed < 0 {
		maxSpeed = -maxSpeed
	}
	e.maxSpeed = maxSpeed
}

// WorldBounds returns the configured bounds and whether any are set.
func (e *Engine) WorldBounds() (common.Rect, bool) {
	if e.worldBounds == nil {
		return common.Rect{}, false
	}
	return *e.worldBounds, true
}

// CollisionPairs returns the pairs found by the last Update. The slice is
// reused by the next Update.
func (e *Engine) CollisionPairs() []CollisionPair { return e.pairs }

// TileTriggerEvents returns the trigger events found by the last Update. The
// slice is reused by the next Update.
func (e *Engine) TileTriggerEvents() []TileTriggerEvent { return e.triggers }

// Update advances the simulation by dt seconds. A zero dt rebuilds pairs and
// trigger events without moving anything. A negative dt is ignored.
func (e *Engine) Update(dt float64) {
	if dt < 0 {
		logger.Printf("Update: negative dt %v, tick skipped", dt)
		return
	}

	e.pairs = e.pairs[:0]
	e.triggers = e.triggers[:0]

	step := dt > 0
	if step {
		for _, b := range e.bodies {
			if !b.enabled {
				continue
			}
			b.ResetCollisionFlags()
			e.integrate(b, dt)
			e.resolveTiles(b, dt)
			e.clampToWorldBounds(b)
		}
	}

	e.resolveObjects(step)
	e.scanTileTriggers(step)
}

// parts resolves the transform and collider of b's owner. Missing pieces are
// logged once per registration.
func (e *Engine) parts(b *Body) (Transform, *Collider, bool) {
	if b.owner == nil {
		e.warnOnce(b, "body has no owner")
		return nil, nil, false
	}
	t := b.owner.Transform()
	if t == nil {
		e.warnOnce(b, "owner %q has no transform", b.owner.Tag())
		return nil, nil, false
	}
	c := b.owner.Collider()
	if c == nil {
		e.warnOnce(b, "owner %q has no collider", b.owner.Tag())
		return nil, nil, false
	}
	return t, c, true
}

func (e *Engine) warnOnce(b *Body, format string, args ...any) {
	if _, ok := e.warned[b]; ok {
		return
	}
	e.warned[b] = struct{}{}
	logger.Printf(format+", skipped", args...)
}

func (e *Engine) clampVelocity(b *Body) {
	b.Velocity = common.ClampVec(b.Velocity, e.maxSpeed)
}
