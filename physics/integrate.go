package physics

// integrate applies gravity and the accumulated force to b's velocity
// (v += F/m * dt) and clears the force.
func (e *Engine) integrate(b *Body, dt float64) {
	if b.useGravity {
		b.force = b.force.Add(e.gravity.Mult(b.mass))
	}
	b.Velocity = b.Velocity.Add(b.force.Mult(dt / b.mass))
	b.ClearForce()
}
