package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
)

// RespawnSystem handles death events: players go back to their spawn point
// at full health, everything else is destroyed.
type RespawnSystem struct{}

func NewRespawnSystem() *RespawnSystem { return &RespawnSystem{} }

func (r *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range w.Events().OfType(ecs.EventDeath) {
		e, ok := evt.Data.(ecs.Entity)
		if !ok || !ecs.IsAlive(w, e) {
			continue
		}
		if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			ecs.DestroyEntity(w, e)
			continue
		}
		respawn(w, e)
	}
}

func respawn(w *ecs.World, e ecs.Entity) {
	spawn, ok := ecs.Get(w, e, component.SpawnPointComponent.Kind())
	if !ok {
		log.Printf("respawn: entity=%s has no spawn point", e)
		return
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X, t.Y = spawn.X, spawn.Y
	}
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		h.Current = h.Max
	}
	if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		b.SetVelocity(cp.Vector{})
		b.ClearForce()
		b.SetUseGravity(true)
	}
	ecs.Remove(w, e, component.InvulnerableComponent.Kind())
}
