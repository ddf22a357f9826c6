package component

import "time"

// Weapon is the controlled entity's melee swing. Damage, Delay and
// SwingRadius are derived from the wielder's attributes; ReadyAt is the
// simulated time the next swing may start.
type Weapon struct {
	BaseDamage          int
	DamagePerStrength   int
	BaseDelay           time.Duration
	DelayPerAttackSpeed time.Duration
	DelayPerCooldown    time.Duration
	MinDelay            time.Duration
	Reach               float64
	Radius              float64
	RadiusPerScale      float64
	Duration            time.Duration

	Damage      int
	Delay       time.Duration
	SwingRadius float64
	ReadyAt     time.Duration
}

var WeaponComponent = NewComponent[Weapon]()

func (wp *Weapon) RecomputeDamage(strength int) {
	wp.Damage = wp.BaseDamage + strength*wp.DamagePerStrength
}

func (wp *Weapon) RecomputeDelay(attackSpeed, cooldown int) {
	d := wp.BaseDelay - time.Duration(attackSpeed)*wp.DelayPerAttackSpeed - time.Duration(cooldown)*wp.DelayPerCooldown
	if d < wp.MinDelay {
		d = wp.MinDelay
	}
	wp.Delay = d
}

func (wp *Weapon) RecomputeRadius(scale int) {
	wp.SwingRadius = wp.Radius * (1 + float64(scale)*wp.RadiusPerScale)
}
