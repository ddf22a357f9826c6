package ecs

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeHostile
	collisionTypeHostileAttack
	collisionTypeAttack
	collisionTypeTrigger
)

// reportedPairs are the collider role pairs that produce contacts.
var reportedPairs = [][2]cp.CollisionType{
	{collisionTypePlayer, collisionTypeHostile},
	{collisionTypePlayer, collisionTypeHostileAttack},
	{collisionTypeAttack, collisionTypeHostile},
	{collisionTypePlayer, collisionTypeTrigger},
}

// PhysicsWorld owns the Chipmunk space. Every collider is a sensor circle on
// a dynamic body, so the space only detects overlaps and never resolves
// them; overlaps of the reported role pairs are queued as contacts in both
// directions.
type PhysicsWorld struct {
	space *cp.Space

	shapeToEntity map[*cp.Shape]Entity
	bodies        map[Entity]*component.PhysicsBody
	pending       []Contact
	begun         map[*cp.Arbiter]bool
}

// NewPhysicsWorld creates a gravity-free arena space.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})

	pw := &PhysicsWorld{
		space:         space,
		shapeToEntity: make(map[*cp.Shape]Entity),
		bodies:        make(map[Entity]*component.PhysicsBody),
		begun:         make(map[*cp.Arbiter]bool),
	}
	pw.setupHandlers()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

func (pw *PhysicsWorld) setupHandlers() {
	for _, pair := range reportedPairs {
		h := pw.space.NewCollisionHandler(pair[0], pair[1])
		h.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			pw.begun[arb] = true
			pw.record(arb, false)
			return true
		}
		// PreSolve also runs on the step a touch begins; that step is
		// already reported as an enter.
		h.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			if !pw.begun[arb] {
				pw.record(arb, true)
			}
			return true
		}
	}
}

func (pw *PhysicsWorld) record(arb *cp.Arbiter, stay bool) {
	a, b := arb.Shapes()
	ea, okA := pw.shapeToEntity[a]
	eb, okB := pw.shapeToEntity[b]
	if !okA || !okB || ea == eb {
		return
	}
	pw.pending = append(pw.pending,
		Contact{Self: ea, Other: eb, Stay: stay},
		Contact{Self: eb, Other: ea, Stay: stay},
	)
}

// EnsureBody creates a sensor body for e at (x, y) if it has none.
func (pw *PhysicsWorld) EnsureBody(e Entity, x, y float64, c *component.Collider) *component.PhysicsBody {
	if pw == nil || c == nil {
		return nil
	}
	if pb, ok := pw.bodies[e]; ok {
		return pb
	}

	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: x, Y: y})
	pw.space.AddBody(body)

	pb := &component.PhysicsBody{Body: body, Role: c.Role}
	pw.bodies[e] = pb
	pw.attachShape(e, pb, c.Radius)
	return pb
}

// SetRadius replaces e's sensor circle. Chipmunk circles are not resized in
// place, so the shape is rebuilt.
func (pw *PhysicsWorld) SetRadius(e Entity, radius float64) {
	pb, ok := pw.bodies[e]
	if !ok || pb.Shape == nil || pb.Radius == radius {
		return
	}
	pw.detachShape(pb)
	pw.attachShape(e, pb, radius)
}

func (pw *PhysicsWorld) attachShape(e Entity, pb *component.PhysicsBody, radius float64) {
	if radius <= 0 {
		log.Printf("physics: entity %d has non-positive radius %.2f, using 1", e, radius)
		radius = 1
	}
	shape := cp.NewCircle(pb.Body, radius, cp.Vector{})
	shape.SetSensor(true)
	shape.SetCollisionType(roleType(pb.Role))
	pw.space.AddShape(shape)

	pb.Shape = shape
	pb.Radius = radius
	pw.shapeToEntity[shape] = e
}

func (pw *PhysicsWorld) detachShape(pb *component.PhysicsBody) {
	if pb.Shape == nil {
		return
	}
	delete(pw.shapeToEntity, pb.Shape)
	pw.space.RemoveShape(pb.Shape)
	pb.Shape = nil
}

// RemoveBody drops e's body and shape from the space.
func (pw *PhysicsWorld) RemoveBody(e Entity) {
	if pw == nil {
		return
	}
	pb, ok := pw.bodies[e]
	if !ok {
		return
	}
	pw.detachShape(pb)
	pw.space.RemoveBody(pb.Body)
	delete(pw.bodies, e)
}

// Body returns e's physics body.
func (pw *PhysicsWorld) Body(e Entity) (*component.PhysicsBody, bool) {
	if pw == nil {
		return nil, false
	}
	pb, ok := pw.bodies[e]
	return pb, ok
}

// Step advances the space by dt seconds.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || dt <= 0 {
		return
	}
	clear(pw.begun)
	pw.space.Step(dt)
}

// DrainContacts returns and clears contacts recorded since the last drain.
func (pw *PhysicsWorld) DrainContacts() []Contact {
	if pw == nil || len(pw.pending) == 0 {
		return nil
	}
	out := pw.pending
	pw.pending = nil
	return out
}

func roleType(role component.ColliderRole) cp.CollisionType {
	switch role {
	case component.ColliderPlayer:
		return collisionTypePlayer
	case component.ColliderHostile:
		return collisionTypeHostile
	case component.ColliderHostileAttack:
		return collisionTypeHostileAttack
	case component.ColliderAttack:
		return collisionTypeAttack
	case component.ColliderTrigger:
		return collisionTypeTrigger
	}
	return 0
}
