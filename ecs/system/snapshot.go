package system

import (
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/physics"
	"gopkg.in/yaml.v3"
)

// BodySnapshot is one body's state in a world dump.
type BodySnapshot struct {
	Entity   string     `yaml:"entity"`
	Tag      string     `yaml:"tag,omitempty"`
	Position [2]float64 `yaml:"position"`
	Velocity [2]float64 `yaml:"velocity"`
	Gravity  bool       `yaml:"gravity"`
	Contacts []string   `yaml:"contacts,flow,omitempty"`
	Health   *int       `yaml:"health,omitempty"`
}

// Snapshot lists every entity with a body in entity order.
func Snapshot(w *ecs.World) []BodySnapshot {
	var out []BodySnapshot
	ecs.ForEach2(w,
		component.PhysicsBodyComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, b *physics.Body, t *component.Transform) {
			s := BodySnapshot{
				Entity:   e.String(),
				Position: [2]float64{t.X, t.Y},
				Velocity: [2]float64{b.Velocity.X, b.Velocity.Y},
				Gravity:  b.UseGravity(),
				Contacts: contacts(b),
			}
			if tag, ok := ecs.Get(w, e, component.TagComponent.Kind()); ok {
				s.Tag = tag.Name
			}
			if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
				hp := h.Current
				s.Health = &hp
			}
			out = append(out, s)
		})
	return out
}

func SnapshotYAML(w *ecs.World) ([]byte, error) {
	return yaml.Marshal(map[string]any{"bodies": Snapshot(w)})
}

func contacts(b *physics.Body) []string {
	var out []string
	for _, c := range []struct {
		name string
		set  bool
	}{
		{"below", b.CollidedBelow()},
		{"above", b.CollidedAbove()},
		{"left", b.CollidedLeft()},
		{"right", b.CollidedRight()},
		{"ladder", b.CollidedLadder()},
		{"ladder_top", b.OnTopLadder()},
	} {
		if c.set {
			out = append(out, c.name)
		}
	}
	return out
}
