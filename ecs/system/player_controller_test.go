package system

import (
	"testing"

	"github.com/milk9111/tilephysics/ecs"
	"github.com/milk9111/tilephysics/ecs/component"
)

func TestPlayerControllerWalkAndJump(t *testing.T) {
	w := newTestWorld(t, floorRows...)
	player := spawn(t, w, "player", 40, 48)
	controller := NewPlayerControllerSystem()
	ps := NewPhysicsSystem(testConfig())
	s := ecs.NewScheduler(controller, ps)
	runTicks(w, s, 2)

	input, _ := ecs.Get(w, player, component.InputComponent.Kind())
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !body.CollidedBelow() {
		t.Fatalf("player should be standing on the floor")
	}

	input.MoveX = -1
	controller.Update(w)
	if body.Velocity.X != -playerMoveSpeed {
		t.Fatalf("velocity.x = %v, want %v", body.Velocity.X, -playerMoveSpeed)
	}

	input.JumpPressed = true
	controller.Update(w)
	if body.Velocity.Y != -playerJumpSpeed {
		t.Fatalf("grounded jump: velocity.y = %v", body.Velocity.Y)
	}

	ps.Update(w)
	if body.CollidedBelow() {
		t.Fatalf("player should be airborne")
	}
	vy := body.Velocity.Y
	controller.Update(w)
	if body.Velocity.Y != vy {
		t.Fatalf("air jump should be ignored, velocity.y %v -> %v", vy, body.Velocity.Y)
	}
}

func TestPlayerControllerClimbsLadder(t *testing.T) {
	w := newTestWorld(t,
		"..H.....",
		"..H.....",
		"..H.....",
		"########",
	)
	player := spawn(t, w, "player", 40, 48)
	controller := NewPlayerControllerSystem()
	ps := NewPhysicsSystem(testConfig())
	runTicks(w, ecs.NewScheduler(controller, ps), 2)

	input, _ := ecs.Get(w, player, component.InputComponent.Kind())
	body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	if !body.CollidedLadder() {
		t.Fatalf("player should overlap the ladder")
	}

	input.MoveY = -1
	controller.Update(w)
	if body.UseGravity() || body.Velocity.Y != -playerClimbSpeed {
		t.Fatalf("climbing: gravity=%v velocity.y=%v", body.UseGravity(), body.Velocity.Y)
	}

	ps.Update(w)
	input.MoveY = 0
	controller.Update(w)
	if body.UseGravity() || body.Velocity.Y != 0 {
		t.Fatalf("idle on ladder should hang in place: gravity=%v velocity.y=%v", body.UseGravity(), body.Velocity.Y)
	}

	input.JumpPressed = true
	controller.Update(w)
	if !body.UseGravity() || body.Velocity.Y != -playerJumpSpeed {
		t.Fatalf("jump off ladder: gravity=%v velocity.y=%v", body.UseGravity(), body.Velocity.Y)
	}
}
