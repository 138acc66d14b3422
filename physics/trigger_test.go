package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestTileTriggerEvents(t *testing.T) {
	hazards := func() *gridLayer {
		return newGridLayer(6, 4, 16).set(0, 1, TileHazard).set(1, 1, TileHazard).set(2, 1, TileHazard)
	}

	cases := []struct {
		name   string
		layers []TileLayer
		pos    cp.Vector
		size   cp.Vector
		want   int
	}{
		{"three_hazards_one_event", []TileLayer{hazards()}, cp.Vector{X: 0, Y: 16}, cp.Vector{X: 48, Y: 16}, 1},
		{"dedup_is_per_layer", []TileLayer{hazards(), hazards()}, cp.Vector{X: 0, Y: 16}, cp.Vector{X: 48, Y: 16}, 2},
		{"far_edge_tolerance", []TileLayer{hazards()}, cp.Vector{X: 0, Y: 0}, cp.Vector{X: 16, Y: 16}, 0},
		{"partial_overlap", []TileLayer{hazards()}, cp.Vector{X: 40, Y: 10}, cp.Vector{X: 16, Y: 16}, 1},
		{"no_hazard", []TileLayer{newGridLayer(4, 4, 16).set(0, 0, TileSolid)}, cp.Vector{}, cp.Vector{X: 16, Y: 16}, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newTestEngine(c.layers...)
			b, o := newTestBody("player", c.pos.X, c.pos.Y, c.size.X, c.size.Y, false)
			e.RegisterBody(b)

			e.Update(1.0 / 60)

			events := e.TileTriggerEvents()
			if len(events) != c.want {
				t.Fatalf("expected %d events, got %d", c.want, len(events))
			}
			for _, ev := range events {
				if ev.Owner != o || ev.Type != TileHazard {
					t.Fatalf("unexpected event %+v", ev)
				}
			}
		})
	}
}

func TestTileTriggerSkipsNonResolvingColliders(t *testing.T) {
	layer := newGridLayer(2, 2, 16).set(0, 0, TileHazard)

	for _, name := range []string{"trigger", "inactive", "disabled"} {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine(layer)
			b, o := newTestBody("player", 0, 0, 16, 16, false)
			switch name {
			case "trigger":
				o.collider.SetTrigger(true)
			case "inactive":
				o.collider.SetActive(false)
			case "disabled":
				b.SetEnabled(false)
			}
			e.RegisterBody(b)

			e.Update(1.0 / 60)

			if n := len(e.TileTriggerEvents()); n != 0 {
				t.Fatalf("expected no events, got %d", n)
			}
		})
	}
}

func TestTileTriggerEventsClearedEachTick(t *testing.T) {
	e := newTestEngine(newGridLayer(4, 4, 16).set(0, 0, TileHazard))
	b, o := newTestBody("player", 0, 0, 16, 16, false)
	e.RegisterBody(b)

	e.Update(1.0 / 60)
	if len(e.TileTriggerEvents()) != 1 {
		t.Fatalf("expected one event")
	}

	o.transform.pos = cp.Vector{X: 32, Y: 32}
	e.Update(1.0 / 60)
	if n := len(e.TileTriggerEvents()); n != 0 {
		t.Fatalf("stale events survived the tick: %d", n)
	}
}

func TestTileTypeNames(t *testing.T) {
	for tt := range tileTypeCount {
		got, ok := ParseTileType(tt.String())
		if !ok || got != tt {
			t.Fatalf("ParseTileType(%q) = %v, %v", tt.String(), got, ok)
		}
	}
	if TileType(200).String() != "unknown" {
		t.Fatalf("out of range tile type should be unknown")
	}
	if _, ok := ParseTileType("lava"); ok {
		t.Fatalf("unexpected tile type parsed")
	}
}
