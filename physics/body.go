package physics

import "github.com/jakecoffman/cp"

// Transform is the position source of an owner.
type Transform interface {
	Position() cp.Vector
	Translate(delta cp.Vector)
	Scale() cp.Vector
}

// Owner is the entity a body belongs to. The engine only ever borrows it.
type Owner interface {
	Tag() string
	// Transform returns nil when the owner has no transform.
	Transform() Transform
	// Collider returns nil when the owner has no collider.
	Collider() *Collider
}

// SolidTag marks an owner as an immovable obstacle for object collision.
const SolidTag = "solid"

// Body is a movable point of integration. Velocity is exported so game logic
// can set it directly between ticks.
type Body struct {
	Velocity cp.Vector

	owner      Owner
	force      cp.Vector
	mass       float64
	useGravity bool
	enabled    bool

	collidedBelow  bool
	collidedAbove  bool
	collidedLeft   bool
	collidedRight  bool
	collidedLadder bool
	onTopLadder    bool
}

func NewBody(owner Owner, useGravity bool, mass float64) *Body {
	b := &Body{owner: owner, useGravity: useGravity, enabled: true}
	b.SetMass(mass)
	return b
}

func (b *Body) Owner() Owner         { return b.owner }
func (b *Body) SetOwner(owner Owner) { b.owner = owner }

func (b *Body) Mass() float64 { return b.mass }

// SetMass falls back to 1 for non-positive masses.
func (b *Body) SetMass(mass float64) {
	if mass <= 0 {
		mass = 1
	}
	b.mass = mass
}

func (b *Body) UseGravity() bool               { return b.useGravity }
func (b *Body) SetUseGravity(useGravity bool)  { b.useGravity = useGravity }
func (b *Body) Enabled() bool                  { return b.enabled }
func (b *Body) SetEnabled(enabled bool)        { b.enabled = enabled }
func (b *Body) SetVelocity(velocity cp.Vector) { b.Velocity = velocity }

// AddForce accumulates a force for the next integration. Ignored while the
// body is disabled.
func (b *Body) AddForce(force cp.Vector) {
	if !b.enabled {
		return
	}
	b.force = b.force.Add(force)
}

func (b *Body) Force() cp.Vector { return b.force }
func (b *Body) ClearForce()      { b.force = cp.Vector{} }

func (b *Body) CollidedBelow() bool  { return b.collidedBelow }
func (b *Body) CollidedAbove() bool  { return b.collidedAbove }
func (b *Body) CollidedLeft() bool   { return b.collidedLeft }
func (b *Body) CollidedRight() bool  { return b.collidedRight }
func (b *Body) CollidedLadder() bool { return b.collidedLadder }
func (b *Body) OnTopLadder() bool    { return b.onTopLadder }

func (b *Body) ResetCollisionFlags() {
	b.collidedBelow = false
	b.collidedAbove = false
	b.collidedLeft = false
	b.collidedRight = false
	b.collidedLadder = false
	b.onTopLadder = false
}
