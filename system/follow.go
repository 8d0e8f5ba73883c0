package system

import (
	"math"

	"github.com/lmcneill42/space-game/component"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/parameter"
	"github.com/lmcneill42/space-game/physics"
)

// FollowsTrackedSystem steers entities towards whatever their Tracking has
// locked onto: chase when far, match velocity when close.
type FollowsTrackedSystem struct{}

func NewFollowsTrackedSystem() *FollowsTrackedSystem {
	return &FollowsTrackedSystem{}
}

func (s *FollowsTrackedSystem) Priority() int {
	return parameter.PriorityFollowsTracked
}

func (s *FollowsTrackedSystem) Update(w *engine.World, dt float64) {
	for _, e := range w.Query(
		engine.TypeOf[component.FollowsTracked](),
		engine.TypeOf[component.Tracking](),
		engine.TypeOf[physics.Body](),
	) {
		follows := engine.Get[component.FollowsTracked](w, e)
		tracking := engine.Get[component.Tracking](w, e)
		body := engine.Get[physics.Body](w, e)

		target := engine.Deref[physics.Body](w, tracking.Tracked)
		if target == nil {
			continue
		}

		displacement := target.Position.Sub(body.Position)
		rvel := target.Velocity.Sub(body.Velocity)
		targetDist := follows.DesiredDistance
		if targetDist <= 0 {
			continue
		}

		// distality maps distance onto [0,1) to blend between matching the
		// target's velocity (close) and flying straight at it (far).
		distality := 1 - math.Exp2(-displacement.Length()/targetDist)
		direction := rvel.Normalized().Scaled(1 - distality).
			Add(displacement.Normalized().Scaled(distality))

		frac := math.Min(math.Max(displacement.Length()/targetDist, rvel.Length()/200), 1)
		thrust := body.Mass * follows.Acceleration
		body.ApplyForce(direction.Scaled(frac * thrust))
	}
}
