package system

import (
	"go.uber.org/zap"

	"github.com/lmcneill42/space-game/component"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/parameter"
	"github.com/lmcneill42/space-game/physics"
)

// LaunchesFightersSystem spawns periodic batches of fighters from carriers,
// aimed in a cone towards the carrier's tracked target. Fighters inherit the
// carrier's team and position but fly free: they are not children, so they
// outlive the carrier.
type LaunchesFightersSystem struct{}

func NewLaunchesFightersSystem() *LaunchesFightersSystem {
	return &LaunchesFightersSystem{}
}

func (s *LaunchesFightersSystem) Priority() int {
	return parameter.PriorityLauncher
}

func (s *LaunchesFightersSystem) Update(w *engine.World, dt float64) {
	for _, e := range w.Query(
		engine.TypeOf[component.LaunchesFighters](),
		engine.TypeOf[component.Tracking](),
		engine.TypeOf[component.Team](),
		engine.TypeOf[physics.Body](),
	) {
		launcher := engine.Get[component.LaunchesFighters](w, e)
		if !launcher.SpawnTimer.Tick(dt) {
			continue
		}
		launcher.SpawnTimer.Reset()

		body := engine.Get[physics.Body](w, e)
		team := engine.Get[component.Team](w, e)
		tracking := engine.Get[component.Tracking](w, e)
		target := engine.Deref[physics.Body](w, tracking.Tracked)
		if target == nil {
			continue
		}

		rng := w.Resources.Rand
		towards := target.Position.Sub(body.Position).Normalized()
		for i := 0; i < launcher.NumFighters; i++ {
			spread := launcher.TakeoffSpread
			direction := towards.RotatedDegrees(spread*rng.Float64() - spread/2)
			_, err := w.CreateEntity(launcher.FighterConfig, engine.Overrides{
				"team":     team.Name,
				"position": body.Position,
				"velocity": body.Velocity.Add(direction.Scaled(launcher.TakeoffSpeed)),
			})
			if err != nil {
				w.Resources.Log.Error("launching fighter",
					zap.String("config", launcher.FighterConfig), zap.Error(err))
				break
			}
		}
	}
}
