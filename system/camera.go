package system

import (
	"github.com/lmcneill42/space-game/component"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/parameter"
	"github.com/lmcneill42/space-game/physics"
)

// CameraSystem moves each camera to its tracked body and decays screen
// shake. A camera whose subject has died simply stops moving.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (s *CameraSystem) Priority() int {
	return parameter.PriorityCamera
}

func (s *CameraSystem) Update(w *engine.World, dt float64) {
	for _, e := range w.Query(engine.TypeOf[component.Camera]()) {
		cam := engine.Get[component.Camera](w, e)

		if tracked := engine.Deref[physics.Body](w, cam.Tracked); tracked != nil {
			cam.Position = tracked.Position
		} else {
			cam.Tracked.Clear()
		}

		cam.Shake -= dt * cam.DampingFactor
		if cam.Shake < 0 {
			cam.Shake = 0
		}
		rng := w.Resources.Rand
		cam.HorizontalShake = (1 - 2*rng.Float64()) * cam.Shake
		cam.VerticalShake = (1 - 2*rng.Float64()) * cam.Shake
	}
}
