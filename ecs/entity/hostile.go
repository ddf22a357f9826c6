package entity

import (
	"fmt"

	"github.com/milk9111/horde/combat"
	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
	"github.com/milk9111/horde/prefabs"
	"github.com/milk9111/horde/wave"
)

// NewHostile builds one hostile from spec at a point. behaviors are the
// spec's compiled legacy scripts, shared by every copy.
func NewHostile(w *ecs.World, spec *prefabs.HostileSpec, at wave.Point, behaviors []any) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.HostileTagComponent.Kind(), &component.HostileTag{}); err != nil {
		return 0, fmt.Errorf("hostile: add hostile tag: %w", err)
	}

	// Hostiles without contact damage rely on their legacy behaviors.
	if spec.ContactDamage > 0 {
		if err := ecs.Add(w, entity, component.HostileComponent.Kind(), &component.Hostile{
			Kind:          spec.Name,
			ContactDamage: spec.ContactDamage,
		}); err != nil {
			return 0, fmt.Errorf("hostile: add hostile component: %w", err)
		}
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: at.X, Y: at.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("hostile: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{
		Radius: spec.Radius,
		Role:   component.ColliderHostile,
	}); err != nil {
		return 0, fmt.Errorf("hostile: add collider: %w", err)
	}

	if spec.MoveSpeed > 0 {
		if err := ecs.Add(w, entity, component.SeekComponent.Kind(), &component.Seek{
			BaseSpeed: spec.MoveSpeed,
			Speed:     spec.MoveSpeed,
			StopDist:  spec.StopDistance,
		}); err != nil {
			return 0, fmt.Errorf("hostile: add seek: %w", err)
		}
	}

	if sh := spec.Shooter; sh != nil {
		if err := ecs.Add(w, entity, component.ShooterComponent.Kind(), &component.Shooter{
			Pattern:            component.ShotPattern(sh.Pattern),
			Interval:           sh.Interval,
			Warning:            sh.Warning,
			Range:              sh.Range,
			Count:              sh.Count,
			Spread:             sh.Spread,
			DirX:               sh.Direction.X,
			DirY:               sh.Direction.Y,
			ProjectileDamage:   sh.Projectile.Damage,
			ProjectileSpeed:    sh.Projectile.Speed,
			ProjectileLifetime: sh.Projectile.Lifetime,
			ProjectileRadius:   sh.Projectile.Radius,
		}); err != nil {
			return 0, fmt.Errorf("hostile: add shooter: %w", err)
		}
	}

	if len(behaviors) > 0 {
		list := append([]any(nil), behaviors...)
		if err := ecs.Add(w, entity, component.BehaviorsComponent.Kind(), &component.Behaviors{List: list}); err != nil {
			return 0, fmt.Errorf("hostile: add behaviors: %w", err)
		}
	}

	health := combat.NewHealth(spec.Health.HealthConfig(combat.FromAttack), w)
	if err := ecs.Add(w, entity, combat.HealthComponent.Kind(), health); err != nil {
		return 0, fmt.Errorf("hostile: add health: %w", err)
	}

	return entity, nil
}

// HostileFactory compiles spec's scripts once and returns a spawner factory.
func HostileFactory(spec *prefabs.HostileSpec) (wave.Factory, error) {
	behaviors := make([]any, 0, len(spec.Scripts))
	for _, name := range spec.Scripts {
		src, err := prefabs.LoadScript(name)
		if err != nil {
			return nil, fmt.Errorf("hostile %s: load script %s: %w", spec.Name, name, err)
		}
		b, err := combat.NewScriptBehavior(name, src)
		if err != nil {
			return nil, fmt.Errorf("hostile %s: %w", spec.Name, err)
		}
		behaviors = append(behaviors, b)
	}

	return func(w *ecs.World, at wave.Point) (ecs.Entity, error) {
		return NewHostile(w, spec, at, behaviors)
	}, nil
}

// LoadPools builds the normal and special spawn pools named by spec.
func LoadPools(spec *prefabs.EncounterSpec) (normal, special []wave.Prefab, err error) {
	normal, err = loadPool(spec.Hostiles)
	if err != nil {
		return nil, nil, err
	}
	special, err = loadPool(spec.SpecialHostiles)
	if err != nil {
		return nil, nil, err
	}
	return normal, special, nil
}

func loadPool(files []string) ([]wave.Prefab, error) {
	pool := make([]wave.Prefab, 0, len(files))
	for _, file := range files {
		hs, err := prefabs.LoadHostileSpec(file)
		if err != nil {
			return nil, err
		}
		factory, err := HostileFactory(hs)
		if err != nil {
			return nil, err
		}
		pool = append(pool, wave.Prefab{Name: hs.Name, Build: factory})
	}
	return pool, nil
}
