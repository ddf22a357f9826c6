package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// CueKind identifies presentation cues for render, animation and audio
// collaborators.
type CueKind string

const (
	CueSpawn     CueKind = "spawn"
	CueAttack    CueKind = "attack"
	CueHit       CueKind = "hit"
	CueDeath     CueKind = "death"
	CueTelegraph CueKind = "telegraph"
	CueShot      CueKind = "shot"
)

// Cue asks a collaborator to play something for an entity at a position.
type Cue struct {
	Entity Entity
	Kind   CueKind
	X, Y   float64
}

// Contact is one side of a touch reported by the physics collaborator. Stay
// is set for every tick after the first that the pair keeps overlapping.
type Contact struct {
	Self  Entity
	Other Entity
	Stay  bool
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}

// EmitCue queues a presentation cue.
func EmitCue(w *World, e Entity, kind CueKind, x, y float64) {
	if w == nil {
		return
	}
	w.events.Push(Event{Type: string(kind), Data: Cue{Entity: e, Kind: kind, X: x, Y: y}})
}

// PushContact queues a contact for the contact system.
func PushContact(w *World, c Contact) {
	if w == nil {
		return
	}
	w.contacts = append(w.contacts, c)
}

// DrainContacts returns and clears queued contacts.
func DrainContacts(w *World) []Contact {
	if w == nil || len(w.contacts) == 0 {
		return nil
	}
	out := w.contacts
	w.contacts = nil
	return out
}
