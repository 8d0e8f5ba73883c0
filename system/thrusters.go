package system

import (
	"github.com/lmcneill42/space-game/component"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/parameter"
	"github.com/lmcneill42/space-game/physics"
)

// counterRotationEps is the angular speed (degrees per second) below which
// an uncommanded spin is left alone rather than damped.
const counterRotationEps = 10.0

// ThrustersSystem turns steering intent into thruster switching. When no
// turn is commanded it counter-fires against residual spin, so ships settle
// instead of pirouetting.
type ThrustersSystem struct{}

func NewThrustersSystem() *ThrustersSystem {
	return &ThrustersSystem{}
}

func (s *ThrustersSystem) Priority() int {
	return parameter.PriorityThrusters
}

func (s *ThrustersSystem) Update(w *engine.World, dt float64) {
	for _, e := range w.Query(
		engine.TypeOf[component.Thrusters](),
		engine.TypeOf[physics.Body](),
	) {
		intent := engine.Get[component.Thrusters](w, e)
		body := engine.Get[physics.Body](w, e)

		turn := intent.Turn
		if turn == 0 && intent.Direction.X == 0 {
			if body.AngularVelocity > counterRotationEps {
				turn = -1
			} else if body.AngularVelocity < -counterRotationEps {
				turn = 1
			}
		}
		body.FireCorrectThrusters(intent.Direction, turn)
	}
}
