package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/physics"
)

var floorRows = []string{
	"........",
	"........",
	"........",
	"########",
}

func TestPhysicsSystemLandsBodyOnLayer(t *testing.T) {
	w := newTestWorld(t, floorRows...)
	crate := spawn(t, w, "crate", 16, 0)
	ps := NewPhysicsSystem(testConfig())

	runTicks(w, ecs.NewScheduler(ps), 60)

	if n := len(ps.Engine().Bodies()); n != 1 {
		t.Fatalf("expected one registered body, got %d", n)
	}
	if n := len(ps.Engine().TileLayers()); n != 1 {
		t.Fatalf("expected one registered layer, got %d", n)
	}
	tr, _ := ecs.Get(w, crate, component.TransformComponent.Kind())
	body, _ := ecs.Get(w, crate, component.PhysicsBodyComponent.Kind())
	if tr.Y != 32 || !body.CollidedBelow() || body.Velocity.Y != 0 {
		t.Fatalf("crate at y=%v below=%v vy=%v", tr.Y, body.CollidedBelow(), body.Velocity.Y)
	}
	if got, ok := ownerEntity(body.Owner()); !ok || got != crate {
		t.Fatalf("body owner should resolve to the crate, got %s", got)
	}
	if body.Owner().Tag() != physics.SolidTag {
		t.Fatalf("owner tag = %q", body.Owner().Tag())
	}
}

func TestPhysicsSystemUnregisters(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(w *ecs.World, e ecs.Entity)
		want   int
	}{
		{"destroyed", func(w *ecs.World, e ecs.Entity) { ecs.DestroyEntity(w, e) }, 0},
		{"body_removed", func(w *ecs.World, e ecs.Entity) { ecs.Remove(w, e, component.PhysicsBodyComponent.Kind()) }, 0},
		{"body_replaced", func(w *ecs.World, e ecs.Entity) {
			_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), physics.NewBody(nil, false, 1))
		}, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newTestWorld(t, floorRows...)
			e := spawn(t, w, "crate", 16, 0)
			ps := NewPhysicsSystem(testConfig())
			ps.Update(w)
			old, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())

			c.mutate(w, e)
			ps.Update(w)

			bodies := ps.Engine().Bodies()
			if len(bodies) != c.want {
				t.Fatalf("expected %d bodies, got %d", c.want, len(bodies))
			}
			if old.Owner() != nil {
				t.Fatalf("dropped body should lose its owner")
			}
			if c.want == 1 && (bodies[0] == old || bodies[0].Owner() == nil) {
				t.Fatalf("replacement body was not registered")
			}
		})
	}
}

func TestPhysicsSystemLayerSync(t *testing.T) {
	w := newTestWorld(t, floorRows...)
	ps := NewPhysicsSystem(testConfig())
	ps.Update(w)

	layerEntity, tl, ok := ecs.First(w, component.TileLayerComponent.Kind())
	if !ok || len(ps.Engine().TileLayers()) != 1 {
		t.Fatalf("collision layer not registered")
	}

	tl.Collision = false
	ps.Update(w)
	if n := len(ps.Engine().TileLayers()); n != 0 {
		t.Fatalf("non-collision layer still registered: %d", n)
	}

	tl.Collision = true
	ps.Update(w)
	ecs.DestroyEntity(w, layerEntity)
	ps.Update(w)
	if n := len(ps.Engine().TileLayers()); n != 0 {
		t.Fatalf("layer of a destroyed entity still registered: %d", n)
	}
}

func TestPhysicsSystemRefreshesColliderOffsetOnScale(t *testing.T) {
	w := newTestWorld(t, floorRows...)
	player := spawn(t, w, "player", 40, 48)
	ps := NewPhysicsSystem(testConfig())
	ps.Update(w)

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	tr.ScaleX = 2
	ps.Update(w)

	col, _ := ecs.Get(w, player, component.ColliderComponent.Kind())
	if col.Offset() != (cp.Vector{X: -12, Y: -24}) {
		t.Fatalf("offset = %v", col.Offset())
	}
	box, ok := EntityAABB(w, player)
	if !ok || box.Size != (cp.Vector{X: 24, Y: 24}) {
		t.Fatalf("box = %+v", box)
	}
}

func TestPhysicsSystemPublishesEvents(t *testing.T) {
	w := newTestWorld(t,
		"........",
		"........",
		"..^^....",
		"########",
	)
	player := spawn(t, w, "player", 40, 48)
	walker := spawn(t, w, "walker", 44, 48)
	ps := NewPhysicsSystem(testConfig())

	ps.Update(w)

	collisions := w.Events().OfType(ecs.EventCollision)
	if len(collisions) != 1 {
		t.Fatalf("expected one collision event, got %d", len(collisions))
	}
	pair := collisions[0].Data.(ecs.CollisionEvent)
	if pair.A != player || pair.B != walker {
		t.Fatalf("pair = %+v", pair)
	}

	hits := map[ecs.Entity]bool{}
	for _, evt := range w.Events().OfType(ecs.EventTileTrigger) {
		hit := evt.Data.(ecs.TileTriggerEvent)
		if hit.Tile != physics.TileHazard {
			t.Fatalf("unexpected trigger tile %v", hit.Tile)
		}
		hits[hit.Entity] = true
	}
	if !hits[player] || !hits[walker] {
		t.Fatalf("expected both bodies on the hazard row, got %v", hits)
	}
}

func TestPhysicsSystemWorldBounds(t *testing.T) {
	w := newTestWorld(t, floorRows...)
	e := ecs.CreateEntity(w)
	bounds := common.NewRect(0, 0, 128, 64)
	if err := ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Bounds: bounds}); err != nil {
		t.Fatalf("add bounds: %v", err)
	}

	cfg := testConfig()
	ps := NewPhysicsSystem(cfg)
	ps.Update(w)
	if got, ok := ps.Engine().WorldBounds(); !ok || got != bounds {
		t.Fatalf("world bounds = %+v, %v", got, ok)
	}

	cfg.ClampToLevel = false
	ps.ApplyConfig(cfg)
	ps.Update(w)
	if _, ok := ps.Engine().WorldBounds(); ok {
		t.Fatalf("bounds should be cleared when clamping is off")
	}
}

func TestPhysicsSystemApplyConfig(t *testing.T) {
	cfg := testConfig()
	ps := NewPhysicsSystem(cfg)

	cfg.TicksPerSecond = 30
	cfg.MaxSpeed = -200
	cfg.Gravity.Y = 100
	ps.ApplyConfig(cfg)

	if ps.Step() != 1.0/30 || ps.Engine().MaxSpeed() != 200 || ps.Engine().Gravity() != (cp.Vector{Y: 100}) {
		t.Fatalf("step=%v max=%v gravity=%v", ps.Step(), ps.Engine().MaxSpeed(), ps.Engine().Gravity())
	}
}
