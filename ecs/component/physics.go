package component

import "github.com/jakecoffman/cp"

// ColliderRole selects which contact pairs the physics world reports.
type ColliderRole int

const (
	ColliderPlayer ColliderRole = iota + 1
	ColliderHostile
	ColliderHostileAttack
	ColliderAttack
	ColliderTrigger
)

// Collider describes the sensor circle an entity occupies in the arena.
type Collider struct {
	Radius float64
	Role   ColliderRole
}

var ColliderComponent = NewComponent[Collider]()

// PhysicsBody stores Chipmunk2D runtime data for a collider.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Radius float64
	Role   ColliderRole
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()

// Attached pins an entity to its parent's transform at an offset.
type Attached struct {
	OffsetX float64
	OffsetY float64
}

var AttachedComponent = NewComponent[Attached]()
