package system

import (
	"math"

	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

// MovementSystem turns the player's input direction into a velocity at the
// attribute-derived move speed.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, p *component.Player, in *component.Input) {
		vx, vy := normalize(in.MoveX, in.MoveY)
		vel := &component.Velocity{X: vx * p.MoveSpeed, Y: vy * p.MoveSpeed}
		_ = ecs.Add(w, e, component.VelocityComponent.Kind(), vel)
	})
}

func normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}
