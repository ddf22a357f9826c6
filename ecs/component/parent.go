package component

// Parent links an entity to the entity that contains it, e.g. a weapon swing
// to its wielder. Entity holds the parent's ecs.Entity value.
type Parent struct {
	Entity uint64
}

var ParentComponent = NewComponent[Parent]()
