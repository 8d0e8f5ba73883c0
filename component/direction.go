package component

import (
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/physics"
	"github.com/lmcneill42/space-game/vmath"
)

// DirectionProvider yields the direction a weapon should shoot in. The
// direction is re-evaluated every shot, so a provider aimed at a moving body
// keeps tracking it. A dangling provider returns the zero vector; the weapon
// system treats that as nothing to shoot at.
type DirectionProvider interface {
	Direction(w *engine.World) vmath.Vec2
}

// TowardPoint aims from a body at a fixed world-space point.
type TowardPoint struct {
	From  engine.Ref
	Point vmath.Vec2
}

func (d TowardPoint) Direction(w *engine.World) vmath.Vec2 {
	from := engine.Deref[physics.Body](w, d.From)
	if from == nil {
		return vmath.Vec2{}
	}
	return d.Point.Sub(from.Position).Normalized()
}

// TowardBody aims from one body at another, tracking it as it moves.
type TowardBody struct {
	From engine.Ref
	To   engine.Ref
}

func (d TowardBody) Direction(w *engine.World) vmath.Vec2 {
	from := engine.Deref[physics.Body](w, d.From)
	to := engine.Deref[physics.Body](w, d.To)
	if from == nil || to == nil {
		return vmath.Vec2{}
	}
	return to.Position.Sub(from.Position).Normalized()
}

// Coaxial aims along a body's nose, wherever it is pointing.
type Coaxial struct {
	From engine.Ref
}

func (d Coaxial) Direction(w *engine.World) vmath.Vec2 {
	from := engine.Deref[physics.Body](w, d.From)
	if from == nil {
		return vmath.Vec2{}
	}
	return from.LocalDirToWorld(vmath.V(0, -1))
}

// Fixed aims in a constant world-space direction.
type Fixed struct {
	Dir vmath.Vec2
}

func (d Fixed) Direction(w *engine.World) vmath.Vec2 {
	return d.Dir.Normalized()
}
