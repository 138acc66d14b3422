package system

import (
	"log"
	"slices"

	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/prefabs"
)

// HazardSystem applies damage from hazard tiles and Hazard entities. It
// reads the events the physics system pushed this tick, so it must run
// after it. An entity takes at most one hit per tick, the largest, and is
// then invulnerable for a number of ticks.
type HazardSystem struct {
	tileDamage         int
	invulnerableFrames int
}

func NewHazardSystem(cfg prefabs.PhysicsConfig) *HazardSystem {
	h := &HazardSystem{}
	h.ApplyConfig(cfg)
	return h
}

func (h *HazardSystem) ApplyConfig(cfg prefabs.PhysicsConfig) {
	h.tileDamage = cfg.HazardDamage
	h.invulnerableFrames = cfg.InvulnerableFrames
}

func (h *HazardSystem) Update(w *ecs.World) {
	if h == nil || w == nil {
		return
	}

	h.tickInvulnerability(w)

	hits := make(map[ecs.Entity]int)
	hit := func(e ecs.Entity, damage int) {
		if damage > hits[e] {
			hits[e] = damage
		}
	}

	for _, evt := range w.Events().OfType(ecs.EventTileTrigger) {
		trigger, ok := evt.Data.(ecs.TileTriggerEvent)
		if !ok || trigger.Tile != physics.TileHazard {
			continue
		}
		hit(trigger.Entity, h.tileDamage)
	}

	for _, evt := range w.Events().OfType(ecs.EventCollision) {
		pair, ok := evt.Data.(ecs.CollisionEvent)
		if !ok {
			continue
		}
		if hz, ok := ecs.Get(w, pair.A, component.HazardComponent.Kind()); ok {
			hit(pair.B, hz.Damage)
		}
		if hz, ok := ecs.Get(w, pair.B, component.HazardComponent.Kind()); ok {
			hit(pair.A, hz.Damage)
		}
	}

	targets := make([]ecs.Entity, 0, len(hits))
	for e := range hits {
		targets = append(targets, e)
	}
	slices.Sort(targets)

	for _, e := range targets {
		h.damage(w, e, hits[e])
	}
}

func (h *HazardSystem) tickInvulnerability(w *ecs.World) {
	var expired []ecs.Entity
	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		if inv.Frames <= 0 {
			return
		}
		inv.Frames--
		if inv.Frames == 0 {
			expired = append(expired, e)
		}
	})
	for _, e := range expired {
		ecs.Remove(w, e, component.InvulnerableComponent.Kind())
	}
}

func (h *HazardSystem) damage(w *ecs.World, e ecs.Entity, amount int) {
	if amount <= 0 {
		return
	}
	health, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || health.Dead() {
		return
	}
	if ecs.Has(w, e, component.InvulnerableComponent.Kind()) {
		return
	}

	health.Current = max(health.Current-amount, 0)
	w.Events().Push(ecs.Event{Type: ecs.EventDamage, Data: ecs.DamageEvent{Entity: e, Amount: amount, Remaining: health.Current}})

	if health.Dead() {
		log.Printf("hazard: entity=%s died", e)
		w.Events().Push(ecs.Event{Type: ecs.EventDeath, Data: e})
		return
	}
	if err := grantInvulnerability(w, e, h.invulnerableFrames); err != nil {
		log.Printf("hazard: entity=%s invulnerability: %v", e, err)
	}
}

// grantInvulnerability protects e for frames ticks. Non-positive frames
// grant nothing.
func grantInvulnerability(w *ecs.World, e ecs.Entity, frames int) error {
	if frames <= 0 {
		return nil
	}
	return ecs.Add(w, e, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: frames})
}
