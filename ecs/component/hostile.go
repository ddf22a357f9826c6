package component

// Hostile holds per-kind tuning for a spawned enemy. ContactDamage is what
// the player takes on touch.
type Hostile struct {
	Kind          string
	ContactDamage int
}

var HostileComponent = NewComponent[Hostile]()

// Seek steers an entity toward the controlled entity's position. Speed is
// BaseSpeed after any scripted scaling.
type Seek struct {
	BaseSpeed float64
	Speed     float64
	StopDist  float64
}

var SeekComponent = NewComponent[Seek]()
