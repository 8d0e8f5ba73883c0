// Package physics owns kinematic state, force integration, body pinning and
// the collision subsystem.
package physics

import (
	"github.com/lmcneill42/space-game/config"
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/vmath"
)

// Thruster is a force-producing attachment on a Body: a local position, a
// local direction and a maximum force, switched on and off by the thruster
// selection pass.
type Thruster struct {
	Position  vmath.Vec2
	Direction vmath.Vec2
	MaxForce  float64

	on bool
}

// On reports whether the thruster is currently firing. Renderers read this
// to draw exhaust.
func (t *Thruster) On() bool {
	return t.on
}

// SetOn switches the thruster.
func (t *Thruster) SetOn(on bool) {
	t.on = on
}

// WorldPosition returns the thruster's attachment point in world space.
func (t *Thruster) WorldPosition(b *Body) vmath.Vec2 {
	return b.LocalToWorld(t.Position)
}

// WorldDirection returns the thruster's thrust direction in world space.
func (t *Thruster) WorldDirection(b *Body) vmath.Vec2 {
	return b.LocalDirToWorld(t.Direction)
}

// Body is the physics component: kinematic state, a collision circle and a
// per-tick force accumulator. A body can be pinned to a parent body, in
// which case its transform is derived from the parent every tick and its own
// accumulator is ignored.
type Body struct {
	Position        vmath.Vec2
	Velocity        vmath.Vec2
	Orientation     float64 // degrees
	AngularVelocity float64 // degrees per second
	Mass            float64 // 0 means immovable
	Size            float64 // collision radius
	Collideable     bool
	Thrusters       []*Thruster

	entity core.Entity
	force  vmath.Vec2
	torque float64

	pinned         bool
	pinParent      engine.Ref
	pinOffset      vmath.Vec2 // parent-local offset captured at pin time
	pinOrientation float64    // orientation relative to parent at pin time
}

// NewBody constructs a body from its parameter block.
func NewBody(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	b := &Body{
		Mass:        cfg.FloatOr("mass", 1),
		Size:        cfg.FloatOr("size", 5),
		Collideable: cfg.BoolOr("is_collideable", true),
	}
	if b.Mass < 0 {
		return nil, &config.Error{File: cfg.File(), Key: "mass", Detail: "must not be negative"}
	}
	if b.Size < 0 {
		return nil, &config.Error{File: cfg.File(), Key: "size", Detail: "must not be negative"}
	}
	for _, tc := range cfg.List("thrusters") {
		b.Thrusters = append(b.Thrusters, &Thruster{
			Position:  tc.Vec2Or("position", vmath.Vec2{}),
			Direction: tc.Vec2Or("direction", vmath.V(0, -1)).Normalized(),
			MaxForce:  tc.FloatOr("max_force", 0),
		})
	}
	return b, nil
}

// Setup layers spawn-time kinematics over the static config. A velocity
// override also points the body along its direction of travel, so bullets
// fly nose first.
func (b *Body) Setup(w *engine.World, ov engine.Overrides) {
	if pos, ok := ov.Vec2("position"); ok {
		b.Position = pos
	}
	if vel, ok := ov.Vec2("velocity"); ok {
		b.Velocity = vel
		if vel.LengthSq() > 0 {
			b.Orientation = vel.AngleDegrees() + 90
		}
	}
	if o, ok := ov.Float("orientation"); ok {
		b.Orientation = o
	}
}

// SetEntity records the owning entity; called by the world on attach.
func (b *Body) SetEntity(e core.Entity) {
	b.entity = e
}

// Entity returns the owning entity.
func (b *Body) Entity() core.Entity {
	return b.entity
}

// ApplyForce accumulates a force through the center of mass. The accumulator
// is consumed and reset by the next integration step.
func (b *Body) ApplyForce(f vmath.Vec2) {
	b.force = b.force.Add(f)
}

// ApplyForceAtLocalPoint accumulates a force applied at a body-local point,
// contributing torque about the center.
func (b *Body) ApplyForceAtLocalPoint(f vmath.Vec2, local vmath.Vec2) {
	b.force = b.force.Add(f)
	r := local.RotatedDegrees(b.Orientation)
	b.torque += r.Cross(f)
}

// LocalToWorld maps a body-local point into world space.
func (b *Body) LocalToWorld(p vmath.Vec2) vmath.Vec2 {
	return b.Position.Add(p.RotatedDegrees(b.Orientation))
}

// WorldToLocal maps a world point into body-local space.
func (b *Body) WorldToLocal(p vmath.Vec2) vmath.Vec2 {
	return p.Sub(b.Position).RotatedDegrees(-b.Orientation)
}

// LocalDirToWorld maps a body-local direction into world space.
func (b *Body) LocalDirToWorld(d vmath.Vec2) vmath.Vec2 {
	return d.RotatedDegrees(b.Orientation)
}

// PinTo rigidly attaches this body to a parent body, capturing the current
// relative offset and orientation. From now on integration derives this
// body's transform from the parent and ignores its own force accumulator.
// Nothing detaches the pin automatically when the parent dies; the owning
// component decides what happens then.
func (b *Body) PinTo(parent *Body) {
	b.pinned = true
	b.pinParent = engine.NewRef(parent.entity)
	b.pinOffset = parent.WorldToLocal(b.Position)
	b.pinOrientation = b.Orientation - parent.Orientation
}

// Unpin releases the pin; the body keeps its current transform and resumes
// free integration.
func (b *Body) Unpin() {
	b.pinned = false
	b.pinParent.Clear()
}

// Pinned reports whether the body is pinned.
func (b *Body) Pinned() bool {
	return b.pinned
}

// PinParent resolves the pinned-to entity, or the nil handle when the body
// is not pinned or the parent is gone.
func (b *Body) PinParent(w *engine.World) core.Entity {
	if !b.pinned {
		return core.NilEntity
	}
	return b.pinParent.Entity(w)
}

// FireCorrectThrusters switches each thruster on or off to realise the
// requested body-local translation direction and turn sense (positive turns
// anticlockwise). Thrusters that would fight the request stay off.
func (b *Body) FireCorrectThrusters(direction vmath.Vec2, turn float64) {
	const alignment = 0.7 // how parallel a thruster must be to count

	dir := direction.Normalized()
	for _, th := range b.Thrusters {
		torque := th.Position.Cross(th.Direction)

		// Opposed pairs cancel their torque, so a pure translation request
		// fires both of a pair while a turn request fires only one side.
		translates := dir.LengthSq() > 0 && th.Direction.Dot(dir) > alignment
		turns := turn != 0 && torque*turn > 0
		th.on = translates || turns
	}
}

func (b *Body) moment() float64 {
	if b.Size <= 0 {
		return b.Mass
	}
	return 0.5 * b.Mass * b.Size * b.Size
}

func (b *Body) integrate(dt float64) {
	if b.Mass > 0 {
		b.Velocity = b.Velocity.Add(b.force.Scaled(dt / b.Mass))
		b.AngularVelocity += vmath.Degrees(b.torque/b.moment()) * dt
	}
	b.Position = b.Position.Add(b.Velocity.Scaled(dt))
	b.Orientation += b.AngularVelocity * dt
	b.force = vmath.Vec2{}
	b.torque = 0
}

// derivePin recomputes the transform of a pinned body from its parent.
func (b *Body) derivePin(parent *Body) {
	b.Position = parent.LocalToWorld(b.pinOffset)
	b.Orientation = parent.Orientation + b.pinOrientation
	b.Velocity = parent.Velocity
	b.force = vmath.Vec2{}
	b.torque = 0
}

// CollidesWith reports whether two circles overlap: both collideable and
// center distance strictly less than the sum of the radii.
func (b *Body) CollidesWith(o *Body) bool {
	if !b.Collideable || !o.Collideable {
		return false
	}
	return b.Position.DistanceTo(o.Position) < b.Size+o.Size
}
