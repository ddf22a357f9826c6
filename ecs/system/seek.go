package system

import (
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

// SeekSystem is the navigation collaborator: it steers every Seek entity
// straight at the player's current position.
type SeekSystem struct{}

func NewSeekSystem() *SeekSystem {
	return &SeekSystem{}
}

func (s *SeekSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	var target *component.Transform
	if ok {
		target, ok = ecs.Get(w, player, component.TransformComponent.Kind())
	}

	ecs.ForEach2(w, component.SeekComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sk *component.Seek, t *component.Transform) {
		vel := &component.Velocity{}
		if ok && t.DistanceTo(target) > sk.StopDist {
			dx, dy := normalize(target.X-t.X, target.Y-t.Y)
			vel.X = dx * sk.Speed
			vel.Y = dy * sk.Speed
		}
		_ = ecs.Add(w, e, component.VelocityComponent.Kind(), vel)
	})
}
