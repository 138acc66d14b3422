package component

// Tag names an entity for collision filtering. The physics engine treats
// the name "solid" as an immovable obstacle.
type Tag struct {
	Name string
}

var TagComponent = NewComponent[Tag]()

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
