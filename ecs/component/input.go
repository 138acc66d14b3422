package component

// Input is the player's intent for the current tick.
type Input struct {
	MoveX       float64
	MoveY       float64
	Jump        bool
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()
