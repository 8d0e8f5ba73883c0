package engine

import (
	"fmt"
	"reflect"
	"sort"

	"go.uber.org/zap"

	"github.com/lmcneill42/space-game/config"
	"github.com/lmcneill42/space-game/core"
)

// lifecycleState partitions the entity table. Transitions happen only at the
// world's declared phase boundaries: alloc (free -> pending), flush
// (pending -> live) and sweep (any -> free). Death within a tick is the
// garbage flag, not a state transition.
type lifecycleState uint8

const (
	stateFree lifecycleState = iota
	statePending
	stateLive
)

type slot struct {
	gen        uint32
	state      lifecycleState
	garbage    bool
	parent     core.Entity
	children   []core.Entity
	components map[reflect.Type]Component
	order      []Component // construction order, for Setup and kill hooks
}

// World is the entity manager. It is the sole owner and mutator of the
// entity tables; all systems run sequentially within a tick, so no locking
// is needed.
type World struct {
	slots   []slot
	free    []uint32
	pending []core.Entity
	systems []System

	registry *Registry
	loader   *config.Loader

	// Resources are shared singletons reachable from any system.
	Resources Resources
}

// NewWorld creates a world over the given component registry and content
// loader. Pass a zap.NewNop() logger in tests.
func NewWorld(reg *Registry, loader *config.Loader, log *zap.Logger) *World {
	w := &World{
		registry: reg,
		loader:   loader,
		// Slot 0 is reserved so that the zero Entity handle never resolves.
		slots: make([]slot, 1),
	}
	w.Resources.init(log)
	return w
}

// slotFor returns the slot a handle refers to, or nil when the handle is
// stale (generation mismatch) or was never allocated.
func (w *World) slotFor(e core.Entity) *slot {
	if e.ID == 0 || int(e.ID) >= len(w.slots) {
		return nil
	}
	s := &w.slots[e.ID]
	if s.state == stateFree || s.gen != e.Gen {
		return nil
	}
	return s
}

func (w *World) alloc() core.Entity {
	var id uint32
	if n := len(w.free); n > 0 {
		id = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		w.slots = append(w.slots, slot{})
		id = uint32(len(w.slots) - 1)
	}
	s := &w.slots[id]
	s.state = statePending
	s.garbage = false
	s.components = map[reflect.Type]Component{}
	s.order = nil
	s.parent = core.NilEntity
	s.children = nil
	return core.Entity{ID: id, Gen: s.gen}
}

func (w *World) release(id uint32) {
	s := &w.slots[id]
	s.gen++
	s.state = stateFree
	s.garbage = false
	s.components = nil
	s.order = nil
	s.parent = core.NilEntity
	s.children = nil
	w.free = append(w.free, id)
}

// CreateEntity assembles an entity from the named archetype document.
// Components are constructed in declared order, then Setup runs on each in
// the same order with the given overrides. The entity joins the pending
// queue and is invisible to queries until the next tick's flush. On any
// config error the slot is rolled back; a partially-built entity is never
// observable.
func (w *World) CreateEntity(name string, ov Overrides) (core.Entity, error) {
	cfg, err := w.loader.Load(name)
	if err != nil {
		w.Resources.Log.Error("entity config failed to load",
			zap.String("config", name), zap.Error(err))
		return core.NilEntity, err
	}
	return w.CreateEntityFromConfig(cfg, ov)
}

// CreateEntityFromConfig is CreateEntity for an already-parsed document.
func (w *World) CreateEntityFromConfig(cfg *config.Config, ov Overrides) (core.Entity, error) {
	e := w.alloc()

	for _, entry := range cfg.Components() {
		factory, ok := w.registry.Lookup(entry.Name)
		if !ok {
			w.release(e.ID)
			return core.NilEntity, &config.Error{
				File:   cfg.File(),
				Key:    entry.Name,
				Detail: "unknown component type",
			}
		}
		comp, err := factory(e, w, entry.Config)
		if err != nil {
			w.release(e.ID)
			return core.NilEntity, err
		}
		if err := w.attach(e, comp); err != nil {
			w.release(e.ID)
			return core.NilEntity, err
		}
	}

	w.finishCreate(e, ov)
	return e, nil
}

// CreateEntityWith assembles an entity directly from component values,
// bypassing config. Used by code-driven spawns and tests.
func (w *World) CreateEntityWith(comps ...Component) (core.Entity, error) {
	e := w.alloc()
	for _, comp := range comps {
		if err := w.attach(e, comp); err != nil {
			w.release(e.ID)
			return core.NilEntity, err
		}
	}
	w.finishCreate(e, nil)
	return e, nil
}

func (w *World) finishCreate(e core.Entity, ov Overrides) {
	if parent, ok := ov.Entity("parent"); ok {
		w.SetParent(e, parent)
	}

	s := &w.slots[e.ID]
	for _, comp := range s.order {
		if h, ok := comp.(SetupHook); ok {
			h.Setup(w, ov)
		}
	}

	w.pending = append(w.pending, e)
}

func (w *World) attach(e core.Entity, comp Component) error {
	t := reflect.TypeOf(comp)
	if t == nil || t.Kind() != reflect.Pointer {
		return fmt.Errorf("component must be a pointer, got %T", comp)
	}
	key := t.Elem()

	s := &w.slots[e.ID]
	if _, dup := s.components[key]; dup {
		return fmt.Errorf("entity already has a %s component", key.Name())
	}
	s.components[key] = comp
	s.order = append(s.order, comp)
	if aware, ok := comp.(EntityAware); ok {
		aware.SetEntity(e)
	}
	return nil
}

// Kill marks an entity as garbage. Idempotent. The flag is visible to
// queries immediately; kill hooks run now, in construction order; owned
// children die with their parent; storage removal waits for the sweep.
func (w *World) Kill(e core.Entity) {
	s := w.slotFor(e)
	if s == nil || s.garbage {
		return
	}
	s.garbage = true

	// Kill the children first. Copy the list: killing a child unlinks it
	// from us.
	children := append([]core.Entity(nil), s.children...)
	for _, child := range children {
		w.Kill(child)
	}

	if !s.parent.IsNil() {
		if ps := w.slotFor(s.parent); ps != nil {
			ps.children = removeEntity(ps.children, e)
		}
		s.parent = core.NilEntity
	}

	for _, comp := range s.order {
		if h, ok := comp.(KillHook); ok {
			h.OnKilled(w, e)
		}
	}
}

// IsGarbage reports whether the entity has been killed (or no longer
// exists). The flag is monotonic: it never goes back to false.
func (w *World) IsGarbage(e core.Entity) bool {
	s := w.slotFor(e)
	return s == nil || s.garbage
}

// Alive reports whether the entity is live, not pending and not garbage.
func (w *World) Alive(e core.Entity) bool {
	s := w.slotFor(e)
	return s != nil && s.state == stateLive && !s.garbage
}

// SetParent links child to parent, tying their lifetimes together and
// feeding the ancestor checks used by collision resolution.
func (w *World) SetParent(child, parent core.Entity) {
	cs := w.slotFor(child)
	ps := w.slotFor(parent)
	if cs == nil || ps == nil {
		return
	}
	if !cs.parent.IsNil() {
		if old := w.slotFor(cs.parent); old != nil {
			old.children = removeEntity(old.children, child)
		}
	}
	cs.parent = parent
	ps.children = append(ps.children, child)
}

// Parent returns the entity's parent, or the nil handle.
func (w *World) Parent(e core.Entity) core.Entity {
	s := w.slotFor(e)
	if s == nil {
		return core.NilEntity
	}
	return s.parent
}

// Children returns a copy of the entity's direct children.
func (w *World) Children(e core.Entity) []core.Entity {
	s := w.slotFor(e)
	if s == nil {
		return nil
	}
	return append([]core.Entity(nil), s.children...)
}

// IsAncestor reports whether ancestor appears on descendant's parent chain.
// An entity counts as its own ancestor.
func (w *World) IsAncestor(ancestor, descendant core.Entity) bool {
	if ancestor.IsNil() || descendant.IsNil() {
		return false
	}
	for e := descendant; !e.IsNil(); e = w.Parent(e) {
		if e == ancestor {
			return true
		}
	}
	return false
}

// Query returns every live, non-garbage entity that holds all of the given
// component types, as a snapshot taken now. Callers may create or kill
// entities while iterating the result.
func (w *World) Query(types ...reflect.Type) []core.Entity {
	var out []core.Entity
	for id := 1; id < len(w.slots); id++ {
		s := &w.slots[id]
		if s.state != stateLive || s.garbage {
			continue
		}
		if !hasAll(s, types) {
			continue
		}
		out = append(out, core.Entity{ID: uint32(id), Gen: s.gen})
	}
	return out
}

func hasAll(s *slot, types []reflect.Type) bool {
	for _, t := range types {
		if _, ok := s.components[t]; !ok {
			return false
		}
	}
	return true
}

// Tick advances the world by dt seconds: flush the pending queue into the
// live set, run every system in priority order, then sweep the garbage.
func (w *World) Tick(dt float64) {
	w.flushPending()
	for _, sys := range w.systems {
		sys.Update(w, dt)
	}
	w.sweep()
}

func (w *World) flushPending() {
	queued := w.pending
	w.pending = nil
	for _, e := range queued {
		s := w.slotFor(e)
		if s == nil || s.state != statePending {
			continue
		}
		if s.garbage {
			// Killed before it ever went live; the sweep reclaims it.
			continue
		}
		s.state = stateLive
	}
}

func (w *World) sweep() {
	for id := 1; id < len(w.slots); id++ {
		s := &w.slots[id]
		if s.state != stateFree && s.garbage {
			w.release(uint32(id))
		}
	}
}

// AddSystem registers a system, keeping the list sorted by priority (lower
// runs first). Registration order breaks ties.
func (w *World) AddSystem(sys System) {
	w.systems = append(w.systems, sys)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
}

// Loader exposes the content loader, for components that load sub-configs
// (weapons reference their bullet archetype, carriers their fighters).
func (w *World) Loader() *config.Loader {
	return w.loader
}

func removeEntity(list []core.Entity, e core.Entity) []core.Entity {
	for i, x := range list {
		if x == e {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// Get returns the entity's component of type T, or nil when the entity has
// none or the handle is stale. Absence of an optional component is normal
// and never an error. Components remain reachable on garbage entities until
// the sweep, so kill hooks can read their siblings.
func Get[T any](w *World, e core.Entity) *T {
	s := w.slotFor(e)
	if s == nil {
		return nil
	}
	c, ok := s.components[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil
	}
	return c.(*T)
}

// Has reports whether the entity holds a component of type T.
func Has[T any](w *World, e core.Entity) bool {
	return Get[T](w, e) != nil
}

// HasComponent is the non-generic form of Has, for callers that carry
// component types as values (collision handler matching).
func (w *World) HasComponent(e core.Entity, t reflect.Type) bool {
	s := w.slotFor(e)
	if s == nil {
		return false
	}
	_, ok := s.components[t]
	return ok
}

// TypeOf returns the component storage key for T, for building queries.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetAncestorWith walks the parent chain starting at e and returns the first
// entity (including e itself) holding a component of type T, or the nil
// handle.
func GetAncestorWith[T any](w *World, e core.Entity) core.Entity {
	for cur := e; !cur.IsNil(); cur = w.Parent(cur) {
		if Has[T](w, cur) {
			return cur
		}
	}
	return core.NilEntity
}
