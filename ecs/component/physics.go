package component

import "github.com/milk9111/tilephysics/physics"

// PhysicsBodyComponent attaches a physics body. The physics system registers
// it with the engine and points its owner back at the entity.
var PhysicsBodyComponent = NewComponent[physics.Body]()

// ColliderComponent attaches a collider. Its offset is refreshed from the
// entity's Transform scale whenever the scale changes.
var ColliderComponent = NewComponent[physics.Collider]()
