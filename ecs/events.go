package ecs

import "github.com/milk9111/tilephysics/physics"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	// EventCollision carries a CollisionEvent for every unresolved body pair.
	EventCollision = "collision"
	// EventTileTrigger carries a TileTriggerEvent for every trigger tile hit.
	EventTileTrigger = "tile_trigger"
	// EventDamage carries a DamageEvent when a hazard lowers an entity's health.
	EventDamage = "damage"
	// EventDeath carries the Entity whose health reached zero.
	EventDeath = "death"
)

type CollisionEvent struct {
	A, B Entity
}

type TileTriggerEvent struct {
	Entity Entity
	Tile   physics.TileType
}

type DamageEvent struct {
	Entity    Entity
	Amount    int
	Remaining int
}

// EventQueue is a FIFO queue that lives for one scheduler frame.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// OfType returns the queued events with the given type without removing them.
func (q *EventQueue) OfType(typ string) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == typ {
			out = append(out, evt)
		}
	}
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
