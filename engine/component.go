// Package engine is the entity-component kernel: entity lifecycle, component
// storage, per-tick system scheduling and weak references.
//
// An entity is an identity. Components imbue it with state and behaviour; an
// entity holds at most one component of a given type. Entities are created
// from ordered archetype documents and become visible to queries at the next
// tick boundary; killing is synchronous but storage removal is deferred to
// the end of the tick.
package engine

import (
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/vmath"
)

// Component is the marker for anything attachable to an entity. Concrete
// components are pointers to structs; the world keys storage by the struct
// type.
type Component any

// SetupHook is implemented by components that accept spawn-time values
// (team, position, velocity, ...) layered on top of static config. The world
// calls Setup on every component of a new entity, in construction order,
// after all of its siblings exist.
type SetupHook interface {
	Setup(w *World, ov Overrides)
}

// EntityAware is implemented by components that keep a handle to their owning
// entity (a Body needs it to map collisions back to the entity). The world
// injects the handle when the component is attached.
type EntityAware interface {
	SetEntity(e core.Entity)
}

// KillHook is implemented by components that react to their entity dying
// (spawn an explosion, shake the camera, end the game). Invoked synchronously
// by Kill, in construction order, with the dying entity's handle. Hooks are
// side-effect-only and must not fail.
type KillHook interface {
	OnKilled(w *World, e core.Entity)
}

// Overrides carries spawn-time values into component Setup calls.
type Overrides map[string]any

// Vec2 returns the vector override at key.
func (o Overrides) Vec2(key string) (vmath.Vec2, bool) {
	v, ok := o[key].(vmath.Vec2)
	return v, ok
}

// Float returns the float override at key.
func (o Overrides) Float(key string) (float64, bool) {
	f, ok := o[key].(float64)
	return f, ok
}

// String returns the string override at key.
func (o Overrides) String(key string) (string, bool) {
	s, ok := o[key].(string)
	return s, ok
}

// Entity returns the entity handle override at key.
func (o Overrides) Entity(key string) (core.Entity, bool) {
	e, ok := o[key].(core.Entity)
	return e, ok
}
