package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

// PhysicsSystem keeps the chipmunk space in step with the ECS: it creates
// bodies for new colliders, pushes velocities in, steps the space, copies
// positions back out and forwards the contacts the space reported.
type PhysicsSystem struct {
	pw *ecs.PhysicsWorld
}

func NewPhysicsSystem(pw *ecs.PhysicsWorld) *PhysicsSystem {
	return &PhysicsSystem{pw: pw}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.pw == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Collider, t *component.Transform) {
		if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			return
		}
		if pb := ps.pw.EnsureBody(e, t.X, t.Y, c); pb != nil {
			_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), pb)
		}
	})

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok && c.Radius != pb.Radius {
			ps.pw.SetRadius(e, c.Radius)
		}
		if att, ok := ecs.Get(w, e, component.AttachedComponent.Kind()); ok {
			if parent, ok := ecs.ParentOf(w, e); ok {
				if pt, ok := ecs.Get(w, parent, component.TransformComponent.Kind()); ok {
					t.X = pt.X + att.OffsetX
					t.Y = pt.Y + att.OffsetY
				}
			}
			pb.Body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
			pb.Body.SetVelocity(0, 0)
			return
		}
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			pb.Body.SetVelocity(v.X, v.Y)
		} else {
			pb.Body.SetVelocity(0, 0)
		}
	})

	ps.pw.Step(w.Delta().Seconds())

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		pos := pb.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
	})

	for _, c := range ps.pw.DrainContacts() {
		ecs.PushContact(w, c)
	}
}
