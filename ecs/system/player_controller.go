package system

import (
	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
	"github.com/milk9111/tilephysics/physics"
)

const (
	playerMoveSpeed  = 120.0
	playerJumpSpeed  = 340.0
	playerClimbSpeed = 80.0
)

// PlayerControllerSystem turns Input into body velocity. Jumping needs
// ground contact; vertical input on a ladder switches the body to climbing,
// which turns its gravity off until it leaves the ladder or jumps.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w,
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(_ ecs.Entity, _ *component.PlayerTag, input *component.Input, body *physics.Body) {
			vel := body.Velocity
			vel.X = input.MoveX * playerMoveSpeed

			climbing := !body.UseGravity()
			switch {
			case input.JumpPressed && (body.CollidedBelow() || climbing):
				vel.Y = -playerJumpSpeed
				climbing = false
			case body.CollidedLadder() && input.MoveY != 0:
				climbing = true
			case body.OnTopLadder() && input.MoveY > 0:
				climbing = true
			case climbing && !body.CollidedLadder():
				climbing = false
			}

			if climbing {
				vel.Y = input.MoveY * playerClimbSpeed
			}
			body.SetUseGravity(!climbing)
			body.SetVelocity(vel)
		})
}
