package system

import (
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

// WeaponSystem issues melee swings. A swing is a short-lived child entity
// of the wielder carrying a Hitbox and the Attack tag, so hostiles take its
// damage and the wielder never does.
type WeaponSystem struct{}

func NewWeaponSystem() *WeaponSystem {
	return &WeaponSystem{}
}

func (s *WeaponSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	now := w.Now()
	ecs.ForEach3(w, component.WeaponComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, wp *component.Weapon, in *component.Input, t *component.Transform) {
		if !in.Attack || now < wp.ReadyAt {
			return
		}
		wp.ReadyAt = now + wp.Delay

		ax, ay := normalize(in.AimX, in.AimY)
		if ax == 0 && ay == 0 {
			ax = 1
		}
		ox, oy := ax*wp.Reach, ay*wp.Reach

		swing := ecs.CreateEntity(w)
		_ = ecs.SetParent(w, swing, e)
		_ = ecs.Add(w, swing, component.TransformComponent.Kind(), &component.Transform{X: t.X + ox, Y: t.Y + oy, ScaleX: 1, ScaleY: 1})
		_ = ecs.Add(w, swing, component.AttachedComponent.Kind(), &component.Attached{OffsetX: ox, OffsetY: oy})
		_ = ecs.Add(w, swing, component.ColliderComponent.Kind(), &component.Collider{Radius: wp.SwingRadius, Role: component.ColliderAttack})
		_ = ecs.Add(w, swing, component.HitboxComponent.Kind(), &component.Hitbox{Damage: wp.Damage, Radius: wp.SwingRadius})
		_ = ecs.Add(w, swing, component.AttackTagComponent.Kind(), &component.AttackTag{})
		_ = ecs.Add(w, swing, component.TTLComponent.Kind(), &component.TTL{Remaining: wp.Duration})

		ecs.EmitCue(w, e, ecs.CueAttack, t.X+ox, t.Y+oy)
	})
}
