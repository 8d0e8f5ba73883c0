package engine

import "github.com/lmcneill42/space-game/core"

// Ref is a weak reference to another entity. Resolution is lazy: each access
// checks the stored handle's generation against the entity table, so a ref
// to a swept or killed entity resolves to nothing without any invalidation
// pass. A Ref never panics and never returns a garbage entity.
type Ref struct {
	target core.Entity
}

// NewRef returns a reference to the given entity.
func NewRef(e core.Entity) Ref {
	return Ref{target: e}
}

// Set points the reference at a new entity.
func (r *Ref) Set(e core.Entity) {
	r.target = e
}

// Clear empties the reference.
func (r *Ref) Clear() {
	r.target = core.NilEntity
}

// Target returns the raw stored handle without liveness checking.
func (r Ref) Target() core.Entity {
	return r.target
}

// Entity resolves the reference: the referent if it still exists and is not
// garbage, otherwise the nil handle. Pending referents resolve too, so a
// spawner can hold refs to entities it created this tick.
func (r Ref) Entity(w *World) core.Entity {
	if r.target.IsNil() || w.IsGarbage(r.target) {
		return core.NilEntity
	}
	return r.target
}

// Deref resolves the reference and returns the referent's component of type
// T, or nil when the reference dangles or the component is absent.
func Deref[T any](w *World, r Ref) *T {
	e := r.Entity(w)
	if e.IsNil() {
		return nil
	}
	return Get[T](w, e)
}
