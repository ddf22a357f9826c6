package system

import (
	"math"

	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
)

const minCircularShots = 8

// ShooterSystem fires projectile volleys from ranged hostiles at the player.
type ShooterSystem struct{}

func NewShooterSystem() *ShooterSystem {
	return &ShooterSystem{}
}

func (s *ShooterSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	target, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	now := w.Now()
	ecs.ForEach2(w, component.ShooterComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sh *component.Shooter, t *component.Transform) {
		if sh.NextShot == 0 {
			sh.NextShot = now + sh.Interval
		}
		if sh.Range > 0 && t.DistanceTo(target) > sh.Range {
			sh.Warned = false
			return
		}
		if !sh.Warned && now >= sh.NextShot-sh.Warning {
			sh.Warned = true
			ecs.EmitCue(w, e, ecs.CueTelegraph, t.X, t.Y)
		}
		if now < sh.NextShot {
			return
		}
		sh.NextShot = now + sh.Interval
		sh.Warned = false

		for _, dir := range volley(sh, target.X-t.X, target.Y-t.Y) {
			spawnProjectile(w, sh, t, dir)
		}
		ecs.EmitCue(w, e, ecs.CueShot, t.X, t.Y)
	})
}

// volley returns unit directions for one volley. aimX/aimY points at the
// player.
func volley(sh *component.Shooter, aimX, aimY float64) [][2]float64 {
	base := math.Atan2(aimY, aimX)
	switch sh.Pattern {
	case component.PatternBurst:
		n := sh.Count
		if n <= 0 {
			n = 3
		}
		spread := sh.Spread * math.Pi / 180
		start := base - spread*float64(n-1)/2
		out := make([][2]float64, 0, n)
		for i := 0; i < n; i++ {
			a := start + spread*float64(i)
			out = append(out, [2]float64{math.Cos(a), math.Sin(a)})
		}
		return out
	case component.PatternCircular:
		n := sh.Count
		if n < minCircularShots {
			n = minCircularShots
		}
		out := make([][2]float64, 0, n)
		for i := 0; i < n; i++ {
			a := 2 * math.Pi * float64(i) / float64(n)
			out = append(out, [2]float64{math.Cos(a), math.Sin(a)})
		}
		return out
	case component.PatternFixed:
		x, y := normalize(sh.DirX, sh.DirY)
		if x == 0 && y == 0 {
			x = 1
		}
		return [][2]float64{{x, y}}
	}
	return [][2]float64{{math.Cos(base), math.Sin(base)}}
}

func spawnProjectile(w *ecs.World, sh *component.Shooter, from *component.Transform, dir [2]float64) ecs.Entity {
	p := ecs.CreateEntity(w)
	_ = ecs.Add(w, p, component.TransformComponent.Kind(), &component.Transform{X: from.X, Y: from.Y, ScaleX: 1, ScaleY: 1})
	_ = ecs.Add(w, p, component.VelocityComponent.Kind(), &component.Velocity{X: dir[0] * sh.ProjectileSpeed, Y: dir[1] * sh.ProjectileSpeed})
	_ = ecs.Add(w, p, component.ColliderComponent.Kind(), &component.Collider{Radius: sh.ProjectileRadius, Role: component.ColliderHostileAttack})
	_ = ecs.Add(w, p, component.ProjectileComponent.Kind(), &component.Projectile{Damage: sh.ProjectileDamage, Speed: sh.ProjectileSpeed})
	_ = ecs.Add(w, p, component.HostileTagComponent.Kind(), &component.HostileTag{})
	_ = ecs.Add(w, p, component.TTLComponent.Kind(), &component.TTL{Remaining: sh.ProjectileLifetime})
	return p
}
