package physics

import (
	"reflect"

	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
)

// CollisionResult tells the dispatcher, per side, whether that side is
// consumed by the handler. A consumed entity takes part in no further
// handler dispatch this collision pass; future ticks start fresh.
type CollisionResult struct {
	ConsumedFirst  bool
	ConsumedSecond bool
}

// CollisionHandler reacts to a detected overlap between two bodies whose
// owning entities carry a declared pair of component types. The pair is
// ordered: Handle always receives the entity carrying the first type as its
// first argument, whichever physical body supplied it.
type CollisionHandler interface {
	// Types declares the component pair this handler reacts to.
	Types() (first, second reflect.Type)

	// Handle resolves the collision. first holds the first declared type,
	// second the second.
	Handle(w *engine.World, first, second core.Entity) CollisionResult
}

// match tries to satisfy the handler's declared pair with the colliding
// entities, in either physical order.
func matchHandler(w *engine.World, h CollisionHandler, e1, e2 core.Entity) (core.Entity, core.Entity, bool) {
	tFirst, tSecond := h.Types()
	if w.HasComponent(e1, tFirst) && w.HasComponent(e2, tSecond) {
		return e1, e2, true
	}
	if w.HasComponent(e2, tFirst) && w.HasComponent(e1, tSecond) {
		return e2, e1, true
	}
	return core.NilEntity, core.NilEntity, false
}
