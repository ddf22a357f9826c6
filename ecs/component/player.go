package component

// Player holds the controlled entity's movement tuning. MoveSpeed is derived
// from the MoveSpeed attribute and refreshed on every change notification.
type Player struct {
	BaseMoveSpeed     float64
	MoveSpeedPerPoint float64
	MoveSpeed         float64
}

var PlayerComponent = NewComponent[Player]()

// RecomputeSpeed applies the MoveSpeed attribute's current points.
func (p *Player) RecomputeSpeed(points int) {
	p.MoveSpeed = p.BaseMoveSpeed + float64(points)*p.MoveSpeedPerPoint
}
