package physics

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
)

func TestEngineRegistration(t *testing.T) {
	e := newTestEngine()
	a, _ := newTestBody("a", 0, 0, 10, 10, false)
	b, _ := newTestBody("b", 0, 0, 10, 10, false)

	e.RegisterBody(a)
	e.RegisterBody(b)
	e.RegisterBody(a)
	e.RegisterBody(nil)
	if got := len(e.Bodies()); got != 2 {
		t.Fatalf("expected 2 bodies after duplicate register, got %d", got)
	}
	if e.Bodies()[0] != a || e.Bodies()[1] != b {
		t.Fatalf("bodies should keep registration order")
	}

	e.UnregisterBody(a)
	e.UnregisterBody(a)
	if got := e.Bodies(); len(got) != 1 || got[0] != b {
		t.Fatalf("expected only b registered, got %v", got)
	}

	layer := newGridLayer(1, 1, 16)
	e.RegisterTileLayer(layer)
	e.RegisterTileLayer(layer)
	if got := len(e.TileLayers()); got != 1 {
		t.Fatalf("expected 1 layer, got %d", got)
	}
	e.UnregisterTileLayer(layer)
	e.UnregisterTileLayer(layer)
	if got := len(e.TileLayers()); got != 0 {
		t.Fatalf("expected 0 layers, got %d", got)
	}
}

func TestEngineSettings(t *testing.T) {
	bounds := common.NewRect(0, 0, 100, 50)
	e := NewEngine(Config{Gravity: cp.Vector{Y: 10}, MaxSpeed: -20, WorldBounds: &bounds})

	assertVec(t, "gravity", e.Gravity(), cp.Vector{Y: 10})
	assertNear(t, "maxSpeed", e.MaxSpeed(), 20)
	if got, ok := e.WorldBounds(); !ok || got != bounds {
		t.Fatalf("WorldBounds() = %v, %v", got, ok)
	}

	bounds.Size.X = 1
	if got, _ := e.WorldBounds(); got.Size.X != 100 {
		t.Fatalf("engine should copy the bounds, got width %v", got.Size.X)
	}

	e.ClearWorldBounds()
	if _, ok := e.WorldBounds(); ok {
		t.Fatalf("bounds should be cleared")
	}

	e.SetGravity(cp.Vector{X: 1})
	e.SetMaxSpeed(30)
	assertVec(t, "gravity", e.Gravity(), cp.Vector{X: 1})
	assertNear(t, "maxSpeed", e.MaxSpeed(), 30)

	d := DefaultConfig()
	assertVec(t, "default gravity", d.Gravity, cp.Vector{Y: 980})
	assertNear(t, "default maxSpeed", d.MaxSpeed, 500)
}

func TestIntegration(t *testing.T) {
	cases := []struct {
		name    string
		gravity bool
		mass    float64
		force   cp.Vector
		dt      float64
		wantVel cp.Vector
	}{
		{"gravity_only", true, 1, cp.Vector{}, 0.1, cp.Vector{Y: 98}},
		{"gravity_is_mass_independent", true, 4, cp.Vector{}, 0.1, cp.Vector{Y: 98}},
		{"force_scaled_by_mass", false, 2, cp.Vector{X: 100}, 0.5, cp.Vector{X: 25}},
		{"no_gravity_no_force", false, 1, cp.Vector{}, 1, cp.Vector{}},
		{"non_positive_mass_falls_back", false, -3, cp.Vector{X: 10}, 1, cp.Vector{X: 10}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newTestEngine()
			b, _ := newTestBody("body", 0, 0, 10, 10, c.gravity)
			b.SetMass(c.mass)
			b.AddForce(c.force)
			e.RegisterBody(b)

			e.Update(c.dt)

			assertVec(t, "velocity", b.Velocity, c.wantVel)
			assertVec(t, "force", b.Force(), cp.Vector{})
		})
	}
}

func TestNoGravityKeepsVerticalVelocity(t *testing.T) {
	e := newTestEngine()
	b, _ := newTestBody("floater", 0, 0, 10, 10, false)
	b.Velocity = cp.Vector{X: 3, Y: -7}
	e.RegisterBody(b)

	for i := 0; i < 120; i++ {
		e.Update(1.0 / 60)
		assertNear(t, "velocity.y", b.Velocity.Y, -7)
	}
}

func TestVelocityClampedToMaxSpeed(t *testing.T) {
	cases := []struct {
		name string
		vel  cp.Vector
		want cp.Vector
	}{
		{"within", cp.Vector{X: 100, Y: -100}, cp.Vector{X: 100, Y: -100}},
		{"above_positive", cp.Vector{X: 1000, Y: 800}, cp.Vector{X: 500, Y: 500}},
		{"above_negative", cp.Vector{X: -2000, Y: -501}, cp.Vector{X: -500, Y: -500}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newTestEngine()
			b, _ := newTestBody("body", 0, 0, 10, 10, false)
			b.Velocity = c.vel
			e.RegisterBody(b)

			e.Update(0.001)

			assertVec(t, "velocity", b.Velocity, c.want)
		})
	}

	t.Run("gravity_accumulates_to_cap", func(t *testing.T) {
		e := newTestEngine()
		b, _ := newTestBody("faller", 0, 0, 10, 10, true)
		e.RegisterBody(b)
		for i := 0; i < 300; i++ {
			e.Update(1.0 / 60)
			if math.Abs(b.Velocity.X) > e.MaxSpeed() || math.Abs(b.Velocity.Y) > e.MaxSpeed() {
				t.Fatalf("tick %d: velocity %v exceeds max speed", i, b.Velocity)
			}
		}
		assertNear(t, "velocity.y", b.Velocity.Y, 500)
	})

	t.Run("inactive_collider_still_clamped", func(t *testing.T) {
		e := newTestEngine()
		b, o := newTestBody("ghost", 0, 0, 10, 10, false)
		o.collider.SetActive(false)
		b.Velocity = cp.Vector{X: 900}
		e.RegisterBody(b)

		e.Update(0.01)

		assertNear(t, "velocity.x", b.Velocity.X, 500)
		assertNear(t, "position.x", o.transform.pos.X, 9)
	})
}

func TestUpdateZeroIsIdempotent(t *testing.T) {
	layer := newGridLayer(8, 8, 16).set(0, 4, TileSolid).set(1, 0, TileHazard)
	e := newTestEngine(layer)

	type snapshot struct {
		pos, vel cp.Vector
		below    bool
	}

	var bodies []*Body
	var owners []*testOwner
	for i, v := range []cp.Vector{{X: 50, Y: -20}, {X: -400, Y: 300}, {}} {
		b, o := newTestBody("body", float64(i*20), 10, 16, 16, true)
		b.Velocity = v
		b.AddForce(cp.Vector{X: 99})
		bodies = append(bodies, b)
		owners = append(owners, o)
		e.RegisterBody(b)
	}
	solid, solidOwner := newTestBody(SolidTag, 5, 5, 16, 16, false)
	e.RegisterBody(solid)
	owners = append(owners, solidOwner)
	bodies = append(bodies, solid)

	before := make([]snapshot, len(bodies))
	for i, b := range bodies {
		before[i] = snapshot{owners[i].transform.pos, b.Velocity, b.CollidedBelow()}
	}

	for i := 0; i < 3; i++ {
		e.Update(0)
	}

	for i, b := range bodies {
		got := snapshot{owners[i].transform.pos, b.Velocity, b.CollidedBelow()}
		if got != before[i] {
			t.Fatalf("body %d changed on Update(0): %+v -> %+v", i, before[i], got)
		}
	}
	if len(e.TileTriggerEvents()) == 0 {
		t.Fatalf("Update(0) should still report trigger overlaps")
	}
}

func TestNegativeDeltaSkipsTick(t *testing.T) {
	e := newTestEngine()
	b, o := newTestBody("body", 0, 0, 10, 10, true)
	b.Velocity = cp.Vector{X: 10}
	e.RegisterBody(b)

	e.Update(-1)

	assertVec(t, "position", o.transform.pos, cp.Vector{})
	assertVec(t, "velocity", b.Velocity, cp.Vector{X: 10})
}

func TestDisabledBodyIsFrozen(t *testing.T) {
	e := newTestEngine(newGridLayer(4, 4, 16).column(1, TileSolid))
	b, o := newTestBody("sleeper", 0, 0, 16, 16, true)
	b.Velocity = cp.Vector{X: 100, Y: 100}
	b.collidedBelow = true
	b.SetEnabled(false)
	b.AddForce(cp.Vector{X: 1000})
	e.RegisterBody(b)

	e.Update(1.0 / 60)

	assertVec(t, "position", o.transform.pos, cp.Vector{})
	assertVec(t, "velocity", b.Velocity, cp.Vector{X: 100, Y: 100})
	assertVec(t, "force", b.Force(), cp.Vector{})
	if !b.CollidedBelow() {
		t.Fatalf("disabled body flags should not be reset")
	}
}

func TestMissingPartsAreSkipped(t *testing.T) {
	cases := []struct {
		name  string
		owner func() *testOwner
	}{
		{"no_transform", func() *testOwner {
			return &testOwner{tag: "x", collider: NewCollider(NewAABBShape(cp.Vector{X: 1, Y: 1}), AlignNone)}
		}},
		{"no_collider", func() *testOwner {
			return &testOwner{tag: "x", transform: &testTransform{scale: cp.Vector{X: 1, Y: 1}}}
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newTestEngine(newGridLayer(2, 2, 16))
			o := c.owner()
			b := NewBody(o, true, 1)
			e.RegisterBody(b)

			orphan := NewBody(nil, true, 1)
			e.RegisterBody(orphan)

			// Two seconds of free fall would pass the speed cap.
			for i := 0; i < 120; i++ {
				e.Update(1.0 / 60)
			}

			for _, body := range []*Body{b, orphan} {
				if math.Abs(body.Velocity.Y) > e.MaxSpeed() || math.Abs(body.Velocity.X) > e.MaxSpeed() {
					t.Fatalf("velocity %v exceeds max speed %v", body.Velocity, e.MaxSpeed())
				}
			}
			if _, ok := e.warned[b]; !ok {
				t.Fatalf("expected body to be recorded as warned")
			}
			if _, ok := e.warned[orphan]; !ok {
				t.Fatalf("expected ownerless body to be recorded as warned")
			}
			if o.transform != nil {
				assertVec(t, "position", o.transform.pos, cp.Vector{})
			}

			e.UnregisterBody(b)
			if _, ok := e.warned[b]; ok {
				t.Fatalf("unregister should forget the warning")
			}
		})
	}
}

func TestWorldBoundsClamp(t *testing.T) {
	cases := []struct {
		name      string
		start     cp.Vector
		vel       cp.Vector
		wantPos   cp.Vector
		wantLeft  bool
		wantRight bool
		wantAbove bool
	}{
		{"inside", cp.Vector{X: 40, Y: 40}, cp.Vector{}, cp.Vector{X: 40, Y: 40}, false, false, false},
		{"left_and_top", cp.Vector{X: -5, Y: -5}, cp.Vector{X: -10, Y: -10}, cp.Vector{}, true, false, true},
		{"right", cp.Vector{X: 95, Y: 10}, cp.Vector{X: 10}, cp.Vector{X: 90, Y: 10}, false, true, false},
		{"bottom_is_open", cp.Vector{X: 10, Y: 200}, cp.Vector{}, cp.Vector{X: 10, Y: 200}, false, false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newTestEngine()
			e.SetWorldBounds(common.NewRect(0, 0, 100, 100))
			b, o := newTestBody("body", c.start.X, c.start.Y, 10, 10, false)
			b.Velocity = c.vel
			e.RegisterBody(b)

			e.Update(0)
			e.Update(0.0001)

			// The tiny step moves the body by at most 0.001.
			if math.Abs(o.transform.pos.X-c.wantPos.X) > 0.01 || math.Abs(o.transform.pos.Y-c.wantPos.Y) > 0.01 {
				t.Fatalf("position = %v, want %v", o.transform.pos, c.wantPos)
			}
			if b.CollidedLeft() != c.wantLeft || b.CollidedRight() != c.wantRight || b.CollidedAbove() != c.wantAbove {
				t.Fatalf("flags left=%v right=%v above=%v", b.CollidedLeft(), b.CollidedRight(), b.CollidedAbove())
			}
			if c.wantLeft || c.wantRight {
				assertNear(t, "velocity.x", b.Velocity.X, 0)
			}
		})
	}
}
