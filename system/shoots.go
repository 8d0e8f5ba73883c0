package system

import (
	"github.com/lmcneill42/space-game/component"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/parameter"
	"github.com/lmcneill42/space-game/physics"
	"github.com/lmcneill42/space-game/vmath"
)

// ShootsAtTrackedSystem is burst fire control. It orients the entity at its
// tracked target, waits out the fire timer, confirms the line of fire with a
// hit scan so allies are not strafed, then holds the weapon open for a
// burst.
type ShootsAtTrackedSystem struct {
	space *physics.Space
}

func NewShootsAtTrackedSystem(space *physics.Space) *ShootsAtTrackedSystem {
	return &ShootsAtTrackedSystem{space: space}
}

func (s *ShootsAtTrackedSystem) Priority() int {
	return parameter.PriorityShootsAt
}

func (s *ShootsAtTrackedSystem) Update(w *engine.World, dt float64) {
	for _, e := range w.Query(
		engine.TypeOf[component.ShootsAtTracked](),
		engine.TypeOf[component.Tracking](),
		engine.TypeOf[component.Weapon](),
		engine.TypeOf[physics.Body](),
	) {
		fire := engine.Get[component.ShootsAtTracked](w, e)
		tracking := engine.Get[component.Tracking](w, e)
		weapon := engine.Get[component.Weapon](w, e)
		body := engine.Get[physics.Body](w, e)

		tracked := tracking.Tracked.Entity(w)
		target := engine.Deref[physics.Body](w, tracking.Tracked)
		if target == nil {
			if weapon.Shooting() {
				weapon.StopShooting()
			}
			continue
		}

		// Point the nose at the target. Not physically simulated; fire
		// control owns the orientation of anything it aims.
		direction := target.Position.Sub(body.Position).Normalized()
		body.Orientation = 90 + direction.AngleDegrees()

		if !weapon.Shooting() {
			if !fire.CanShoot && fire.FireTimer.Tick(dt) {
				fire.FireTimer.Reset()
				fire.CanShoot = true
			}
			if fire.CanShoot {
				reach := body.Position.DistanceTo(target.Position) + target.Size
				scan := s.space.HitScan(w, body, vmath.Vec2{}, vmath.V(0, -1), reach, 0)
				if scan.Body == target {
					fire.CanShoot = false
					weapon.StartShooting(component.TowardBody{
						From: engine.NewRef(e),
						To:   engine.NewRef(tracked),
					})
				}
			}
		} else {
			if fire.BurstTimer.Tick(dt) {
				fire.BurstTimer.Reset()
				weapon.StopShooting()
			}
		}
	}
}
