// Package event provides typed, synchronous publish/subscribe channels.
//
// A Signal delivers each emitted value to its subscribers in subscription
// order before Emit returns, so a handler always observes the state that
// produced the value. Subscriptions are released explicitly, usually by
// collecting them in a Group that is closed when the subscriber goes away.
package event

// Signal is a typed notification channel. The zero value is ready to use.
type Signal[T any] struct {
	subs   []*Subscription
	nextID uint64
	fns    map[uint64]func(T)
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	id     uint64
	cancel func(uint64)
}

// Subscribe registers fn and returns its handle. A nil fn is ignored and
// yields an inert subscription.
func (s *Signal[T]) Subscribe(fn func(T)) *Subscription {
	if fn == nil {
		return &Subscription{}
	}
	if s.fns == nil {
		s.fns = make(map[uint64]func(T))
	}
	s.nextID++
	sub := &Subscription{id: s.nextID, cancel: s.remove}
	s.fns[sub.id] = fn
	s.subs = append(s.subs, sub)
	return sub
}

// Emit delivers v to every current subscriber. Handlers added during
// delivery wait for the next Emit; handlers removed during delivery are
// skipped if not yet reached.
func (s *Signal[T]) Emit(v T) {
	if len(s.subs) == 0 {
		return
	}
	subs := append([]*Subscription(nil), s.subs...)
	for _, sub := range subs {
		if fn, ok := s.fns[sub.id]; ok {
			fn(v)
		}
	}
}

// Len returns the number of live subscriptions.
func (s *Signal[T]) Len() int {
	return len(s.subs)
}

func (s *Signal[T]) remove(id uint64) {
	if _, ok := s.fns[id]; !ok {
		return
	}
	delete(s.fns, id)
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			break
		}
	}
}

// Unsubscribe detaches the handler. Calling it more than once is harmless.
func (sub *Subscription) Unsubscribe() {
	if sub == nil || sub.cancel == nil {
		return
	}
	cancel := sub.cancel
	sub.cancel = nil
	cancel(sub.id)
}

// Group owns a set of subscriptions released together.
type Group struct {
	subs []*Subscription
}

// Add takes ownership of sub.
func (g *Group) Add(sub *Subscription) {
	if sub == nil {
		return
	}
	g.subs = append(g.subs, sub)
}

// Close unsubscribes everything in the group.
func (g *Group) Close() {
	for _, sub := range g.subs {
		sub.Unsubscribe()
	}
	g.subs = nil
}

// Len returns the number of subscriptions the group holds.
func (g *Group) Len() int {
	return len(g.subs)
}
