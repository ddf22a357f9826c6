package component

import "time"

// ShotPattern selects how a shooter spreads its projectiles.
type ShotPattern string

const (
	PatternAimed    ShotPattern = "aimed"
	PatternBurst    ShotPattern = "burst"
	PatternCircular ShotPattern = "circular"
	PatternFixed    ShotPattern = "fixed"
)

// Shooter fires projectiles at the controlled entity while it is within
// Range. A telegraph cue is emitted Warning before each volley.
type Shooter struct {
	Pattern  ShotPattern
	Interval time.Duration
	Warning  time.Duration
	Range    float64
	Count    int
	Spread   float64 // degrees between burst projectiles
	DirX     float64
	DirY     float64

	ProjectileDamage   int
	ProjectileSpeed    float64
	ProjectileLifetime time.Duration
	ProjectileRadius   float64

	NextShot time.Duration
	Warned   bool
}

var ShooterComponent = NewComponent[Shooter]()
