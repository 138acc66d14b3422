package component

// Invulnerable blocks hazard damage. Frames counts down once per tick and the
// component is removed at zero; Frames == 0 on insert means until removed.
type Invulnerable struct {
	Frames int
}

var InvulnerableComponent = NewComponent[Invulnerable]()
