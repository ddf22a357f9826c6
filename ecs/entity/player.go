package entity

import (
	"fmt"

	"github.com/milk9111/horde/combat"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
	"github.com/milk9111/horde/event"
	"github.com/milk9111/horde/prefabs"
	"github.com/milk9111/horde/stats"
)

// NewPlayer builds the controlled entity at (x, y) and returns it with its
// attribute store, the only handle through which upgrades are applied.
func NewPlayer(w *ecs.World, spec *prefabs.PlayerSpec, x, y float64) (ecs.Entity, *stats.Store, error) {
	initial, caps, err := spec.AttributeTables()
	if err != nil {
		return 0, nil, fmt.Errorf("player: attributes: %w", err)
	}

	entity := ecs.CreateEntity(w)
	store := stats.NewStore(initial, caps)

	if err := ecs.Add(w, entity, stats.StoreComponent.Kind(), store); err != nil {
		return 0, nil, fmt.Errorf("player: add attributes: %w", err)
	}

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, nil, fmt.Errorf("player: add player tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, nil, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{AimX: 1}); err != nil {
		return 0, nil, fmt.Errorf("player: add input: %w", err)
	}

	if err := ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{
		Radius: spec.Radius,
		Role:   component.ColliderPlayer,
	}); err != nil {
		return 0, nil, fmt.Errorf("player: add collider: %w", err)
	}

	player := &component.Player{
		BaseMoveSpeed:     spec.Movement.BaseSpeed,
		MoveSpeedPerPoint: spec.Movement.PerPoint,
	}
	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), player); err != nil {
		return 0, nil, fmt.Errorf("player: add player component: %w", err)
	}

	weapon := &component.Weapon{
		BaseDamage:          spec.Weapon.BaseDamage,
		DamagePerStrength:   spec.Weapon.DamagePerStrength,
		BaseDelay:           spec.Weapon.BaseDelay,
		DelayPerAttackSpeed: spec.Weapon.DelayPerAttackSpeed,
		DelayPerCooldown:    spec.Weapon.DelayPerCooldown,
		MinDelay:            spec.Weapon.MinDelay,
		Reach:               spec.Weapon.Reach,
		Radius:              spec.Weapon.Radius,
		RadiusPerScale:      spec.Weapon.RadiusPerScale,
		Duration:            spec.Weapon.Duration,
	}
	if err := ecs.Add(w, entity, component.WeaponComponent.Kind(), weapon); err != nil {
		return 0, nil, fmt.Errorf("player: add weapon: %w", err)
	}

	health := combat.NewHealth(spec.Health.HealthConfig(combat.FromHostile), w)
	health.Bind(store)
	if err := ecs.Add(w, entity, combat.HealthComponent.Kind(), health); err != nil {
		return 0, nil, fmt.Errorf("player: add health: %w", err)
	}

	subs := BindAttributes(store, player, weapon)
	ecs.OnDestroy(w, entity, func() {
		subs.Close()
		health.Close()
	})

	return entity, store, nil
}

// BindAttributes derives movement and weapon values from attrs now and on
// every later change. The returned group releases the subscriptions.
func BindAttributes(attrs stats.Reader, player *component.Player, weapon *component.Weapon) *event.Group {
	subs := &event.Group{}

	if player != nil {
		player.RecomputeSpeed(attrs.Get(stats.MoveSpeed))
		subs.Add(attrs.Subscribe(stats.MoveSpeed, player.RecomputeSpeed))
	}

	if weapon != nil {
		delay := func(int) {
			weapon.RecomputeDelay(attrs.Get(stats.AttackSpeed), attrs.Get(stats.Cooldown))
		}
		weapon.RecomputeDamage(attrs.Get(stats.Strength))
		weapon.RecomputeRadius(attrs.Get(stats.Scale))
		delay(0)
		subs.Add(attrs.Subscribe(stats.Strength, weapon.RecomputeDamage))
		subs.Add(attrs.Subscribe(stats.Scale, weapon.RecomputeRadius))
		subs.Add(attrs.Subscribe(stats.AttackSpeed, delay))
		subs.Add(attrs.Subscribe(stats.Cooldown, delay))
	}

	return subs
}
