package component

// Input stores the controlled entity's input for the current tick. Move is a
// direction, not yet normalized; Aim is the facing used for melee swings.
type Input struct {
	MoveX  float64
	MoveY  float64
	AimX   float64
	AimY   float64
	Attack bool
}

var InputComponent = NewComponent[Input]()
