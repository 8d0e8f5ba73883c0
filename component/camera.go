package component

import (
	"github.com/lmcneill42/space-game/config"
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/vmath"
)

// Camera is the view state: a world position following a tracked body, plus
// a decaying screen shake. Drawing is external; renderers read Position and
// the shake offsets.
type Camera struct {
	Position vmath.Vec2
	Tracked  engine.Ref

	Shake         float64
	MaxShake      float64
	DampingFactor float64

	// Per-tick randomised offsets derived from Shake; renderers add these
	// to Position.
	HorizontalShake float64
	VerticalShake   float64

	// ShakeRange is the distance beyond which an explosion no longer shakes
	// the view.
	ShakeRange float64
}

func NewCamera(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	return &Camera{
		MaxShake:      cfg.FloatOr("max_shake", 20),
		DampingFactor: cfg.FloatOr("damping_factor", 10),
		ShakeRange:    cfg.FloatOr("shake_range", 1000),
	}, nil
}

// ApplyShake adds shake for an event of the given strength at a world
// position. Distant events shake less; the total is clamped to MaxShake.
func (c *Camera) ApplyShake(factor float64, at vmath.Vec2) {
	if c.ShakeRange <= 0 {
		return
	}
	falloff := 1 - c.Position.DistanceTo(at)/c.ShakeRange
	if falloff <= 0 {
		return
	}
	c.Shake = vmath.Clamp(c.Shake+factor*falloff*c.MaxShake, 0, c.MaxShake)
}
