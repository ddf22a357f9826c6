package component

// Behaviors lists legacy behavior values attached to an entity. They are
// opaque to the ECS and only inspected by the damage resolver's name probe.
type Behaviors struct {
	List []any
}

var BehaviorsComponent = NewComponent[Behaviors]()
