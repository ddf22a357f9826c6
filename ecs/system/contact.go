package system

import (
	"github.com/milk9111/horde/combat"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

// EncounterTrigger is told when the player touches the wave trigger zone.
type EncounterTrigger interface {
	OnPlayerContact()
}

// ContactSystem routes queued contacts to health trackers and the encounter
// trigger.
type ContactSystem struct {
	resolver *combat.Resolver
	trigger  EncounterTrigger
}

func NewContactSystem(resolver *combat.Resolver, trigger EncounterTrigger) *ContactSystem {
	return &ContactSystem{resolver: resolver, trigger: trigger}
}

func (s *ContactSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, c := range ecs.DrainContacts(w) {
		if !ecs.IsAlive(w, c.Self) || !ecs.IsAlive(w, c.Other) {
			continue
		}

		if s.trigger != nil && !c.Stay &&
			ecs.Has(w, c.Self, component.PlayerTagComponent.Kind()) &&
			ecs.Has(w, c.Other, component.WaveTriggerComponent.Kind()) {
			s.trigger.OnPlayerContact()
			continue
		}

		h, ok := ecs.Get(w, c.Self, combat.HealthComponent.Kind())
		if !ok {
			continue
		}
		hb, isSwing := ecs.Get(w, c.Other, component.HitboxComponent.Kind())
		if isSwing && hb.HitTargets[uint64(c.Self)] {
			continue
		}
		accepted := h.Accepts(w, c.Self, c.Other)
		lost := h.HandleContact(w, c.Self, c.Other, c.Stay, s.resolver)
		if lost > 0 {
			if isSwing {
				if hb.HitTargets == nil {
					hb.HitTargets = make(map[uint64]bool)
				}
				hb.HitTargets[uint64(c.Self)] = true
			}
			x, y := position(w, c.Self)
			ecs.EmitCue(w, c.Self, ecs.CueHit, x, y)
		}

		// A projectile is spent on touching its target even when the hit
		// was absorbed by invulnerability.
		if !accepted {
			continue
		}
		if p, ok := ecs.Get(w, c.Other, component.ProjectileComponent.Kind()); ok && !p.Spent {
			p.Spent = true
			ecs.DestroyEntity(w, c.Other)
		}
	}
}

func position(w *ecs.World, e ecs.Entity) (float64, float64) {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return t.X, t.Y
	}
	return 0, 0
}
