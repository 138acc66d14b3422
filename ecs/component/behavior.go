package component

// Behavior drives an entity from a tengo script in prefabs/scripts. Scripts
// read Params with body.param(name, default).
type Behavior struct {
	Script string
	Params map[string]any
}

var BehaviorComponent = NewComponent[Behavior]()
