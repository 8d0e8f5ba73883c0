package physics

import (
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/parameter"
	"github.com/lmcneill42/space-game/vmath"
)

// Space is the physics system. Each tick it applies thruster forces,
// integrates every live body, derives the transforms of pinned bodies from
// their parents, then detects collisions and dispatches the registered
// handlers. Bodies join and leave the simulation with their owning entity;
// there is no separate add or remove step.
type Space struct {
	handlers []CollisionHandler
}

// NewSpace returns an empty physics space.
func NewSpace() *Space {
	return &Space{}
}

// Priority places the space after all force-setting systems and before the
// lifecycle passes.
func (s *Space) Priority() int {
	return parameter.PrioritySpace
}

// AddCollisionHandler registers a handler. Handlers are tried in
// registration order; the first matching handler wins a colliding pair.
func (s *Space) AddCollisionHandler(h CollisionHandler) {
	s.handlers = append(s.handlers, h)
}

// Update advances the simulation one tick.
func (s *Space) Update(w *engine.World, dt float64) {
	entities := w.Query(engine.TypeOf[Body]())

	// Thruster force application.
	for _, e := range entities {
		b := engine.Get[Body](w, e)
		if b == nil {
			continue
		}
		for _, th := range b.Thrusters {
			if th.on && th.MaxForce > 0 {
				b.ApplyForceAtLocalPoint(th.Direction.Scaled(th.MaxForce), th.Position)
			}
		}
	}

	// Free bodies integrate; pinned bodies are derived afterwards so they
	// see their parent's settled transform.
	for _, e := range entities {
		if w.IsGarbage(e) {
			continue
		}
		b := engine.Get[Body](w, e)
		if b == nil || b.pinned {
			continue
		}
		b.integrate(dt)
	}
	for _, e := range entities {
		if w.IsGarbage(e) {
			continue
		}
		b := engine.Get[Body](w, e)
		if b == nil || !b.pinned {
			continue
		}
		parent := engine.Deref[Body](w, b.pinParent)
		if parent == nil {
			// Parent gone. The owning component decides whether to re-pin,
			// orphan or die; the body just stops deriving.
			continue
		}
		b.derivePin(parent)
	}

	s.resolveCollisions(w, entities)
}

func (s *Space) resolveCollisions(w *engine.World, entities []core.Entity) {
	type hit struct {
		e1, e2 core.Entity
	}

	// O(n^2) pairwise scan. Fine at the entity counts involved.
	var collisions []hit
	for i := 0; i < len(entities); i++ {
		b1 := s.liveBody(w, entities[i])
		if b1 == nil {
			continue
		}
		for j := i + 1; j < len(entities); j++ {
			b2 := s.liveBody(w, entities[j])
			if b2 == nil {
				continue
			}
			// Pinned pairs are rigidly attached and permanently overlapping.
			if b1.PinParent(w) == entities[j] || b2.PinParent(w) == entities[i] {
				continue
			}
			if b1.CollidesWith(b2) {
				collisions = append(collisions, hit{entities[i], entities[j]})
			}
		}
	}

	consumed := map[core.Entity]bool{}
	for _, c := range collisions {
		if consumed[c.e1] || consumed[c.e2] || w.IsGarbage(c.e1) || w.IsGarbage(c.e2) {
			continue
		}
		for _, h := range s.handlers {
			first, second, ok := matchHandler(w, h, c.e1, c.e2)
			if !ok {
				continue
			}
			result := h.Handle(w, first, second)
			if result.ConsumedFirst {
				consumed[first] = true
			}
			if result.ConsumedSecond {
				consumed[second] = true
			}
			break // first matching handler wins the pair
		}
		// A pair with no matching handler is normal: most overlaps (two
		// bullets, say) mean nothing.
	}
}

func (s *Space) liveBody(w *engine.World, e core.Entity) *Body {
	if w.IsGarbage(e) {
		return nil
	}
	b := engine.Get[Body](w, e)
	if b == nil || !b.Collideable {
		return nil
	}
	return b
}

// ClosestBodyWith returns the collideable body nearest to point among those
// satisfying pred, or nil. Ties resolve to the first in scan order.
func (s *Space) ClosestBodyWith(w *engine.World, point vmath.Vec2, pred func(*Body) bool) *Body {
	var best *Body
	bestDist := 0.0
	for _, e := range w.Query(engine.TypeOf[Body]()) {
		b := s.liveBody(w, e)
		if b == nil || !pred(b) {
			continue
		}
		d := b.Position.DistanceTo(point)
		if best == nil || d < bestDist {
			best, bestDist = b, d
		}
	}
	return best
}

// HitScanResult is the outcome of a hit scan: the struck body (nil for a
// clean miss), the impact point, and the surface normal at the impact.
type HitScanResult struct {
	Body   *Body
	Point  vmath.Vec2
	Normal vmath.Vec2
}

// HitScan casts a ray from the shooting body along a body-local direction
// and returns the nearest collideable body hit within the given range,
// ignoring anything on the shooter's ancestor chain (a turret must not scan
// its own mount). radius fattens the ray, for beams with width.
func (s *Space) HitScan(w *engine.World, shooter *Body, localOrigin, localDir vmath.Vec2, distance, radius float64) HitScanResult {
	origin := shooter.LocalToWorld(localOrigin)
	dir := shooter.LocalDirToWorld(localDir).Normalized()
	if dir.LengthSq() == 0 {
		return HitScanResult{Point: origin}
	}

	var best *Body
	bestT := distance
	for _, e := range w.Query(engine.TypeOf[Body]()) {
		b := s.liveBody(w, e)
		if b == nil || b == shooter {
			continue
		}
		if w.IsAncestor(e, shooter.entity) || w.IsAncestor(shooter.entity, e) {
			continue
		}
		t, ok := vmath.RayCircle(origin, dir, b.Position, b.Size+radius)
		if ok && t <= bestT {
			best, bestT = b, t
		}
	}

	point := origin.Add(dir.Scaled(bestT))
	if best == nil {
		return HitScanResult{Point: point}
	}
	return HitScanResult{
		Body:   best,
		Point:  point,
		Normal: point.Sub(best.Position).Normalized(),
	}
}
