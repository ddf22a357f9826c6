package system

import (
	"log"

	"github.com/milk9111/horde/combat"
	"github.com/milk9111/horde/ecs"
)

// HealthSystem removes entities whose health reached zero.
type HealthSystem struct{}

func NewHealthSystem() *HealthSystem {
	return &HealthSystem{}
}

func (s *HealthSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, combat.HealthComponent.Kind(), func(e ecs.Entity, h *combat.Health) {
		if !h.Dead() {
			return
		}
		x, y := position(w, e)
		ecs.EmitCue(w, e, ecs.CueDeath, x, y)
		h.Close()
		if !ecs.DestroyEntity(w, e) {
			log.Printf("health: entity %d already gone", e)
		}
	})
}
