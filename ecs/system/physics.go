package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/levels"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/prefabs"
)

// PhysicsSystem keeps a physics.Engine in step with the world. Bodies and
// collision layers are registered as their components appear and dropped
// when the entity or component goes away.
type PhysicsSystem struct {
	engine      *physics.Engine
	step        float64
	clampToEdge bool

	entities map[ecs.Entity]*bodyInfo
	layers   map[ecs.Entity]*levels.Layer
}

type bodyInfo struct {
	body  *physics.Body
	owner *entityOwner
	scale cp.Vector
}

func NewPhysicsSystem(cfg prefabs.PhysicsConfig) *PhysicsSystem {
	ps := &PhysicsSystem{
		engine:   physics.NewEngine(cfg.EngineConfig()),
		entities: make(map[ecs.Entity]*bodyInfo),
		layers:   make(map[ecs.Entity]*levels.Layer),
	}
	ps.ApplyConfig(cfg)
	return ps
}

// ApplyConfig updates the engine settings in place; registrations are kept.
func (ps *PhysicsSystem) ApplyConfig(cfg prefabs.PhysicsConfig) {
	ps.engine.SetGravity(cfg.Gravity.Vector())
	ps.engine.SetMaxSpeed(cfg.MaxSpeed)
	ps.step = cfg.Step()
	ps.clampToEdge = cfg.ClampToLevel
}

func (ps *PhysicsSystem) Engine() *physics.Engine {
	if ps == nil {
		return nil
	}
	return ps.engine
}

func (ps *PhysicsSystem) Step() float64 { return ps.step }

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.syncEntities(w)
	ps.syncLayers(w)
	ps.syncWorldBounds(w)

	ps.engine.Update(ps.step)

	ps.publishEvents(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, body *physics.Body) {
		info, ok := ps.entities[e]
		if !ok {
			info = &bodyInfo{body: body, owner: &entityOwner{w: w, e: e}}
			body.SetOwner(info.owner)
			ps.engine.RegisterBody(body)
			ps.entities[e] = info
		}

		t, hasTransform := ecs.Get(w, e, component.TransformComponent.Kind())
		c, hasCollider := ecs.Get(w, e, component.ColliderComponent.Kind())
		if !hasTransform || !hasCollider {
			return
		}
		if scale := t.Scale(); scale != info.scale {
			c.UpdateOffset(scale)
			info.scale = scale
		}
	})
}

// cleanupEntities unregisters bodies whose entity died or whose body
// component was removed or replaced.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if ok && body == info.body {
			continue
		}
		ps.engine.UnregisterBody(info.body)
		info.body.SetOwner(nil)
		delete(ps.entities, e)
	}
}

func (ps *PhysicsSystem) syncLayers(w *ecs.World) {
	for e, layer := range ps.layers {
		tl, ok := ecs.Get(w, e, component.TileLayerComponent.Kind())
		if ok && tl.Collision && tl.Layer == layer {
			continue
		}
		ps.engine.UnregisterTileLayer(layer)
		delete(ps.layers, e)
	}

	ecs.ForEach(w, component.TileLayerComponent.Kind(), func(e ecs.Entity, tl *component.TileLayer) {
		if !tl.Collision || tl.Layer == nil {
			return
		}
		if _, ok := ps.layers[e]; ok {
			return
		}
		ps.engine.RegisterTileLayer(tl.Layer)
		ps.layers[e] = tl.Layer
	})
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	_, bounds, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok || !ps.clampToEdge || bounds.Bounds.Size.X <= 0 || bounds.Bounds.Size.Y <= 0 {
		ps.engine.ClearWorldBounds()
		return
	}
	ps.engine.SetWorldBounds(bounds.Bounds)
}

func (ps *PhysicsSystem) publishEvents(w *ecs.World) {
	events := w.Events()
	for _, pair := range ps.engine.CollisionPairs() {
		a, okA := ownerEntity(pair.A)
		b, okB := ownerEntity(pair.B)
		if !okA || !okB {
			continue
		}
		events.Push(ecs.Event{Type: ecs.EventCollision, Data: ecs.CollisionEvent{A: a, B: b}})
	}
	for _, hit := range ps.engine.TileTriggerEvents() {
		e, ok := ownerEntity(hit.Owner)
		if !ok {
			continue
		}
		events.Push(ecs.Event{Type: ecs.EventTileTrigger, Data: ecs.TileTriggerEvent{Entity: e, Tile: hit.Type}})
	}
}

func ownerEntity(o physics.Owner) (ecs.Entity, bool) {
	eo, ok := o.(*entityOwner)
	if !ok || eo == nil {
		return 0, false
	}
	return eo.e, true
}

// entityOwner resolves a body's tag, transform and collider from the world
// on every call, so components replaced with ecs.Add are picked up.
type entityOwner struct {
	w *ecs.World
	e ecs.Entity
}

func (o *entityOwner) Tag() string {
	if tag, ok := ecs.Get(o.w, o.e, component.TagComponent.Kind()); ok {
		return tag.Name
	}
	return ""
}

func (o *entityOwner) Transform() physics.Transform {
	t, ok := ecs.Get(o.w, o.e, component.TransformComponent.Kind())
	if !ok {
		return nil
	}
	return transformRef{t: t}
}

func (o *entityOwner) Collider() *physics.Collider {
	c, ok := ecs.Get(o.w, o.e, component.ColliderComponent.Kind())
	if !ok {
		return nil
	}
	return c
}

type transformRef struct {
	t *component.Transform
}

func (r transformRef) Position() cp.Vector { return cp.Vector{X: r.t.X, Y: r.t.Y} }
func (r transformRef) Scale() cp.Vector    { return r.t.Scale() }

func (r transformRef) Translate(delta cp.Vector) {
	r.t.X += delta.X
	r.t.Y += delta.Y
}

// EntityAABB returns e's collider box in world space.
func EntityAABB(w *ecs.World, e ecs.Entity) (common.Rect, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return common.Rect{}, false
	}
	c, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if !ok {
		return common.Rect{}, false
	}
	return c.WorldAABB(transformRef{t: t}), true
}
