package component

import (
	"github.com/lmcneill42/space-game/config"
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/vmath"
)

// Thrusters is the steering intent for an entity with a thruster-equipped
// body: a body-local direction to translate in and a turn sense. Input
// handling and AI write it; the thruster system picks which physical
// thrusters realise it.
type Thrusters struct {
	Direction vmath.Vec2
	Turn      float64
}

func NewThrusters(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	return &Thrusters{}, nil
}
