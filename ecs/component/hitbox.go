package component

// Hitbox is a melee swing's damaging area. Damage is fixed when the swing is
// issued so later stat changes do not rewrite a swing in flight. HitTargets
// records who the swing already damaged; one swing lands once per target.
type Hitbox struct {
	Damage     int
	Radius     float64
	HitTargets map[uint64]bool
}

var HitboxComponent = NewComponent[Hitbox]()
