package stats

import (
	"math"

	"github.com/milk9111/horde/ecs"
	"github.com/milk9111/horde/ecs/component"
	"github.com/milk9111/horde/event"
)

// Reader is the read-only view combat subsystems get of an entity's
// attributes. Only the upgrade path holds the mutable *Store.
type Reader interface {
	Get(k Kind) int
	Cap(k Kind) int
	Subscribe(k Kind, fn func(int)) *event.Subscription
}

// Store is one entity's attribute set. Every value stays within
// [k.Floor(), cap] when the cap is positive, else at or above the floor.
// Change notifications are delivered synchronously before the mutating call
// returns.
type Store struct {
	values  [kindCount]int
	caps    [kindCount]int
	changed [kindCount]event.Signal[int]
}

var StoreComponent = component.NewComponent[Store]()

// NewStore builds a store from initial values and caps. Missing kinds start
// at their floor and are uncapped.
func NewStore(initial, caps map[Kind]int) *Store {
	s := &Store{}
	s.Initialize(initial, caps)
	return s
}

// Initialize resets every kind from the given maps, clamping and notifying
// each one.
func (s *Store) Initialize(initial, caps map[Kind]int) {
	for k := Strength; k < kindCount; k++ {
		c := caps[k]
		if c < 0 {
			c = 0
		}
		s.caps[k] = c
		s.Set(k, initial[k])
	}
}

// Modify adds delta to k. A zero delta changes nothing and notifies no one.
func (s *Store) Modify(k Kind, delta int) {
	if !k.Valid() || delta == 0 {
		return
	}
	s.values[k] = s.clamp(k, addSaturating(s.values[k], delta))
	s.changed[k].Emit(s.values[k])
}

// Set overwrites k. It always notifies, even when the clamped value equals
// the previous one.
func (s *Store) Set(k Kind, value int) {
	if !k.Valid() {
		return
	}
	s.values[k] = s.clamp(k, value)
	s.changed[k].Emit(s.values[k])
}

func (s *Store) Get(k Kind) int {
	if !k.Valid() {
		return 0
	}
	return s.values[k]
}

// Cap returns the configured cap, 0 meaning unbounded.
func (s *Store) Cap(k Kind) int {
	if !k.Valid() {
		return 0
	}
	return s.caps[k]
}

// Subscribe registers fn for k's change notifications.
func (s *Store) Subscribe(k Kind, fn func(int)) *event.Subscription {
	if !k.Valid() {
		return &event.Subscription{}
	}
	return s.changed[k].Subscribe(fn)
}

// Snapshot copies the current values.
func (s *Store) Snapshot() map[Kind]int {
	out := make(map[Kind]int, kindCount)
	for k := Strength; k < kindCount; k++ {
		out[k] = s.values[k]
	}
	return out
}

func (s *Store) clamp(k Kind, v int) int {
	if floor := k.Floor(); v < floor {
		v = floor
	}
	if c := s.caps[k]; c > 0 && v > c {
		v = c
	}
	return v
}

// Lookup returns the nearest store in e's lineage, so a weapon swing reads
// its wielder's attributes.
func Lookup(w *ecs.World, e ecs.Entity) (Reader, bool) {
	_, s, ok := ecs.FindInLineage(w, e, StoreComponent.Kind())
	if !ok {
		return nil, false
	}
	return s, true
}

func addSaturating(v, delta int) int {
	switch {
	case delta > 0 && v > math.MaxInt-delta:
		return math.MaxInt
	case delta < 0 && v < math.MinInt-delta:
		return math.MinInt
	}
	return v + delta
}
