package ecs

import "github.com/milk9111/horde/ecs/component"

const maxHierarchyDepth = 64

// SetParent makes parent the container of child.
func SetParent(w *World, child, parent Entity) error {
	if !IsAlive(w, parent) {
		return component.ErrEntityNotAlive
	}
	return Add(w, child, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(parent)})
}

// ParentOf returns e's live parent.
func ParentOf(w *World, e Entity) (Entity, bool) {
	p, ok := Get(w, e, component.ParentComponent.Kind())
	if !ok {
		return Null, false
	}
	parent := Entity(p.Entity)
	if !IsAlive(w, parent) {
		return Null, false
	}
	return parent, true
}

// Lineage returns e followed by its ancestors, nearest first. A dead parent
// ends the chain.
func Lineage(w *World, e Entity) []Entity {
	if !IsAlive(w, e) {
		return nil
	}
	out := []Entity{e}
	for cur := e; len(out) < maxHierarchyDepth; {
		parent, ok := ParentOf(w, cur)
		if !ok || parent == e {
			break
		}
		out = append(out, parent)
		cur = parent
	}
	return out
}

// IsDescendant reports whether ancestor appears above e in its lineage.
func IsDescendant(w *World, e, ancestor Entity) bool {
	lineage := Lineage(w, e)
	for i := 1; i < len(lineage); i++ {
		if lineage[i] == ancestor {
			return true
		}
	}
	return false
}

// FindInLineage returns the nearest entity in e's lineage carrying kind.
func FindInLineage[T any](w *World, e Entity, kind component.ComponentKind[T]) (Entity, *T, bool) {
	for _, cur := range Lineage(w, e) {
		if v, ok := Get(w, cur, kind); ok {
			return cur, v, true
		}
	}
	return Null, nil, false
}
