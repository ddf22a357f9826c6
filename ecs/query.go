package ecs

import "github.com/milk9111/horde/ecs/component"

// ForEach visits every live entity carrying kind. Entities destroyed or
// stripped of the component by an earlier callback are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil || !kind.Valid() {
		return
	}
	s := w.store(kind.ID(), false)
	for _, id := range s.snapshot() {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		v, ok := s.Get(id).(*T)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

// ForEach2 visits every live entity carrying both kinds.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil || !kb.Valid() {
		return
	}
	sb := w.store(kb.ID(), false)
	ForEach(w, ka, func(e Entity, a *A) {
		b, ok := sb.Get(e.id()).(*B)
		if !ok {
			return
		}
		fn(e, a, b)
	})
}

// ForEach3 visits every live entity carrying all three kinds.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil || !kc.Valid() {
		return
	}
	sc := w.store(kc.ID(), false)
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		c, ok := sc.Get(e.id()).(*C)
		if !ok {
			return
		}
		fn(e, a, b, c)
	})
}

// First returns the first live entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil || !kind.Valid() {
		return Null, false
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return Null, false
	}
	for _, id := range s.denseIDs {
		if e, ok := w.entities.current(id); ok {
			return e, true
		}
	}
	return Null, false
}

// Query returns live entities carrying every listed kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		if !k.Valid() {
			return nil
		}
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}

	// iterate smallest set
	smallest := 0
	for i, s := range sets {
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}

	var out []Entity
	for _, id := range sets[smallest].denseIDs {
		match := true
		for _, s := range sets {
			if !s.Has(id) {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		if e, ok := w.entities.current(id); ok {
			out = append(out, e)
		}
	}
	return out
}
