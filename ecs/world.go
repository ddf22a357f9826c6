package ecs

import (
	"sort"
	"time"

	"github.com/milk9111/horde/ecs/component"
)

// System updates a world once per scheduler tick.
type System interface {
	Update(w *World)
}

// World owns entities, their component stores, the simulated clock and the
// per-tick queues shared with collaborators.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	order    []component.ComponentID

	onDestroy map[Entity][]func()

	events   EventQueue
	contacts []Contact

	now   time.Duration
	delta time.Duration

	physicsWorld *PhysicsWorld
}

// NewWorld creates an empty world with its clock at zero.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*SparseSet),
		onDestroy: make(map[Entity][]func()),
	}
}

// CreateEntity allocates a new live entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return Null
	}
	return w.entities.create()
}

// DestroyEntity runs the entity's destroy hooks, drops its components and
// physics body and frees its slot. It reports false for dead handles.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}

	hooks := w.onDestroy[e]
	delete(w.onDestroy, e)
	for _, fn := range hooks {
		fn()
	}

	if w.physicsWorld != nil {
		w.physicsWorld.RemoveBody(e)
	}
	for _, id := range w.order {
		w.stores[id].Remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether the handle refers to a live entity.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities lists live entities in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}

// OnDestroy registers fn to run once when e is destroyed. Hooks for dead
// entities are dropped.
func OnDestroy(w *World, e Entity, fn func()) {
	if w == nil || fn == nil || !w.entities.isAlive(e) {
		return
	}
	w.onDestroy[e] = append(w.onDestroy[e], fn)
}

// Now returns simulated time since the world was created.
func (w *World) Now() time.Duration {
	if w == nil {
		return 0
	}
	return w.now
}

// Delta returns the length of the current tick.
func (w *World) Delta() time.Duration {
	if w == nil {
		return 0
	}
	return w.delta
}

// Advance moves the clock forward by dt. The scheduler calls this once per
// tick; tests call it directly to drive time.
func (w *World) Advance(dt time.Duration) {
	if w == nil || dt < 0 {
		return
	}
	w.delta = dt
	w.now += dt
}

// Events returns the world cue queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if ok || !create {
		return s
	}
	s = &SparseSet{}
	w.stores[id] = s
	w.order = append(w.order, id)
	sort.Slice(w.order, func(i, j int) bool { return w.order[i] < w.order[j] })
	return s
}
