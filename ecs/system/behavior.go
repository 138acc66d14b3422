package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/physics"
	"github.com/milk9111/tilephysics/prefabs"
)

// BehaviorSystem runs each Behavior entity's tengo script once per tick,
// before physics. Scripts define `update := func(body, state) {...}`;
// state is a map that persists for the entity's lifetime.
type BehaviorSystem struct {
	scripts map[ecs.Entity]*scriptRuntime
}

type scriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	state      *tengo.Map
	failed     bool
}

const behaviorDispatchScript = `
if __phase == "update" {
	update(__body, __state)
}
`

func NewBehaviorSystem() *BehaviorSystem {
	return &BehaviorSystem{scripts: make(map[ecs.Entity]*scriptRuntime)}
}

// Reload drops every compiled script; they are recompiled from disk on the
// next tick and start with fresh state.
func (b *BehaviorSystem) Reload() {
	clear(b.scripts)
}

func (b *BehaviorSystem) Update(w *ecs.World) {
	if b == nil || w == nil {
		return
	}

	for e := range b.scripts {
		if !ecs.Has(w, e, component.BehaviorComponent.Kind()) {
			delete(b.scripts, e)
		}
	}

	ecs.ForEach2(w,
		component.BehaviorComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, behavior *component.Behavior, body *physics.Body) {
			rt, err := b.getScriptRuntime(e, behavior.Script)
			if err != nil {
				log.Printf("behavior: entity=%s load script %q: %v", e, behavior.Script, err)
				return
			}
			if rt.failed {
				return
			}
			if err := rt.runPhase("update", buildBodyAPI(w, e, behavior, body)); err != nil {
				log.Printf("behavior: entity=%s script %q: %v", e, behavior.Script, err)
				rt.failed = true
			}
		})
}

func (b *BehaviorSystem) getScriptRuntime(e ecs.Entity, path string) (*scriptRuntime, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty script path")
	}
	if rt, ok := b.scripts[e]; ok && rt.scriptPath == path {
		return rt, nil
	}

	src, err := prefabs.LoadScript(path)
	if err != nil {
		b.scripts[e] = &scriptRuntime{scriptPath: path, failed: true}
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + behaviorDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__body", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		b.scripts[e] = &scriptRuntime{scriptPath: path, failed: true}
		return nil, err
	}

	rt := &scriptRuntime{
		scriptPath: path,
		compiled:   compiled,
		state:      &tengo.Map{Value: map[string]tengo.Object{}},
	}
	b.scripts[e] = rt
	return rt, nil
}

func (rt *scriptRuntime) runPhase(phase string, body *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__body", body); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildBodyAPI(w *ecs.World, e ecs.Entity, behavior *component.Behavior, body *physics.Body) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	flag := func(name string, get func() bool) {
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			return boolObject(get()), nil
		}}
	}
	flag("collided_below", body.CollidedBelow)
	flag("collided_above", body.CollidedAbove)
	flag("collided_left", body.CollidedLeft)
	flag("collided_right", body.CollidedRight)
	flag("collided_ladder", body.CollidedLadder)
	flag("on_top_ladder", body.OnTopLadder)

	values["velocity"] = &tengo.UserFunction{Name: "velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vecObject(body.Velocity.X, body.Velocity.Y), nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, ok := vecArgs(args)
		if !ok {
			return tengo.FalseValue, nil
		}
		body.Velocity.X, body.Velocity.Y = x, y
		return tengo.TrueValue, nil
	}}

	values["add_force"] = &tengo.UserFunction{Name: "add_force", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, ok := vecArgs(args)
		if !ok {
			return tengo.FalseValue, nil
		}
		body.AddForce(cp.Vector{X: x, Y: y})
		return tengo.TrueValue, nil
	}}

	values["set_gravity"] = &tengo.UserFunction{Name: "set_gravity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		body.SetUseGravity(!args[0].IsFalsy())
		return tengo.TrueValue, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return vecObject(0, 0), nil
		}
		return vecObject(t.X, t.Y), nil
	}}

	values["param"] = &tengo.UserFunction{Name: "param", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		fallback := tengo.Object(tengo.UndefinedValue)
		if len(args) > 1 {
			fallback = args[1]
		}
		raw, ok := behavior.Params[objectAsString(args[0])]
		if !ok {
			return fallback, nil
		}
		obj, err := tengo.FromInterface(raw)
		if err != nil {
			return fallback, nil
		}
		return obj, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func vecObject(x, y float64) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}
}

// vecArgs accepts (x, y) or a single [x, y] array.
func vecArgs(args []tengo.Object) (float64, float64, bool) {
	if len(args) == 1 {
		if arr, ok := args[0].(*tengo.Array); ok {
			args = arr.Value
		}
	}
	if len(args) < 2 {
		return 0, 0, false
	}
	x, okX := tengo.ToFloat64(args[0])
	y, okY := tengo.ToFloat64(args[1])
	return x, y, okX && okY
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
