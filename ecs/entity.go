package ecs

import "strconv"

// Entity packs a 32-bit slot id with a 32-bit generation so stale handles to a
// recycled slot are never mistaken for the new occupant.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

// Null is never returned by CreateEntity.
const Null Entity = 0

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e.id() > 0
}
