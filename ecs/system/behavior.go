package system

import (
	"github.com/milk9111/horde/combat"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

// BehaviorSystem runs scripted behavior hooks once per tick and applies the
// movement multiplier they return to the owner's seek speed.
type BehaviorSystem struct{}

func NewBehaviorSystem() *BehaviorSystem {
	return &BehaviorSystem{}
}

func (s *BehaviorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.BehaviorsComponent.Kind(), component.SeekComponent.Kind(), func(e ecs.Entity, b *component.Behaviors, sk *component.Seek) {
		fraction := 1.0
		if h, ok := ecs.Get(w, e, combat.HealthComponent.Kind()); ok {
			fraction = h.Fraction()
		}
		if sk.BaseSpeed == 0 {
			sk.BaseSpeed = sk.Speed
		}

		scale := 1.0
		for _, v := range b.List {
			sb, ok := v.(*combat.ScriptBehavior)
			if !ok || !sb.HasHook() {
				continue
			}
			if m, ok := sb.SpeedScale(fraction); ok && m >= 0 {
				scale *= m
			}
		}
		sk.Speed = sk.BaseSpeed * scale
	})
}
