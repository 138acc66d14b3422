package component

// Hazard makes an entity hurt whatever it overlaps. Hazard tiles use the
// hazard system's own tile damage.
type Hazard struct {
	Damage int
}

var HazardComponent = NewComponent[Hazard]()
