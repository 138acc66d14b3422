package prefabs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/physics"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownShape     = errors.New("prefabs: unknown collider shape")
	ErrUnknownAlignment = errors.New("prefabs: unknown collider alignment")
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EntityBuildSpec is a prefab: a name and a component name -> raw spec map.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes one raw component entry into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// Vec2 decodes either `[x, y]` or `{x: .., y: ..}`.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v *Vec2) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var xy []float64
		if err := value.Decode(&xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("vector needs 2 components, got %d", len(xy))
		}
		v.X, v.Y = xy[0], xy[1]
		return nil
	case yaml.MappingNode:
		type plain Vec2
		return value.Decode((*plain)(v))
	default:
		return fmt.Errorf("vector must be a sequence or mapping, line %d", value.Line)
	}
}

func (v Vec2) Vector() cp.Vector { return cp.Vector{X: v.X, Y: v.Y} }

type TagSpec struct {
	Name string `yaml:"name"`
}

type TransformSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
}

type ColliderSpec struct {
	Shape     string  `yaml:"shape"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Radius    float64 `yaml:"radius"`
	Alignment string  `yaml:"alignment"`
	Offset    *Vec2   `yaml:"offset"`
	Trigger   bool    `yaml:"trigger"`
	Inactive  bool    `yaml:"inactive"`
}

// Build creates the collider and sizes its offset for scale.
func (s ColliderSpec) Build(scale cp.Vector) (*physics.Collider, error) {
	var shape physics.Shape
	switch strings.ToLower(strings.TrimSpace(s.Shape)) {
	case "", "aabb", "box":
		shape = physics.NewAABBShape(cp.Vector{X: s.Width, Y: s.Height})
	case "circle":
		shape = physics.NewCircleShape(s.Radius)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, s.Shape)
	}

	alignment, ok := physics.ParseAlignment(s.Alignment)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlignment, s.Alignment)
	}

	c := physics.NewCollider(shape, alignment)
	if s.Offset != nil {
		c.SetOffset(s.Offset.Vector())
	}
	c.UpdateOffset(scale)
	c.SetTrigger(s.Trigger)
	c.SetActive(!s.Inactive)
	return c, nil
}

type PhysicsBodySpec struct {
	Mass     float64 `yaml:"mass"`
	Gravity  *bool   `yaml:"gravity"`
	Disabled bool    `yaml:"disabled"`
	Velocity *Vec2   `yaml:"velocity"`
}

// Build returns an ownerless body; gravity defaults to on.
func (s PhysicsBodySpec) Build() *physics.Body {
	gravity := true
	if s.Gravity != nil {
		gravity = *s.Gravity
	}
	b := physics.NewBody(nil, gravity, s.Mass)
	b.SetEnabled(!s.Disabled)
	if s.Velocity != nil {
		b.Velocity = s.Velocity.Vector()
	}
	return b
}

type HealthSpec struct {
	Max int `yaml:"max"`
}

type HazardSpec struct {
	Damage int `yaml:"damage"`
}

type BehaviorSpec struct {
	Script string         `yaml:"script"`
	Params map[string]any `yaml:"params"`
}
