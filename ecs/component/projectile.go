package component

// Projectile is a ranged shot. Spent is set once it has damaged something so
// the contact system can retire it.
type Projectile struct {
	Damage int
	Speed  float64
	Spent  bool
}

var ProjectileComponent = NewComponent[Projectile]()
