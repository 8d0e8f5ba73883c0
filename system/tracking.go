// Package system contains the per-tick systems, one per gameplay concern,
// run by the world in the order fixed by package parameter. Systems own no
// entity state; they read and mutate components.
package system

import (
	"github.com/lmcneill42/space-game/component"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/parameter"
	"github.com/lmcneill42/space-game/physics"
)

// TrackingSystem acquires targets: any entity with a Tracking whose
// reference is empty or dangling locks onto the nearest hostile collideable
// body. Teamless entities never acquire anything.
type TrackingSystem struct {
	space *physics.Space
}

func NewTrackingSystem(space *physics.Space) *TrackingSystem {
	return &TrackingSystem{space: space}
}

func (s *TrackingSystem) Priority() int {
	return parameter.PriorityTracking
}

func (s *TrackingSystem) Update(w *engine.World, dt float64) {
	for _, e := range w.Query(
		engine.TypeOf[component.Tracking](),
		engine.TypeOf[physics.Body](),
	) {
		tracking := engine.Get[component.Tracking](w, e)
		if !tracking.Tracked.Entity(w).IsNil() {
			continue
		}
		tracking.Tracked.Clear()

		body := engine.Get[physics.Body](w, e)
		team := engine.Get[component.Team](w, e)
		closest := s.space.ClosestBodyWith(w, body.Position, func(b *physics.Body) bool {
			return team.Hostile(engine.Get[component.Team](w, b.Entity()))
		})
		if closest != nil {
			tracking.Tracked.Set(closest.Entity())
		}
	}
}
