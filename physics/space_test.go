package physics

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/vmath"
)

// Marker components for handler dispatch tests.
type payload struct{ Damage float64 }
type hull struct{ HP float64 }

type recordedHit struct {
	first, second core.Entity
}

type recordingHandler struct {
	hits    *[]recordedHit
	consume CollisionResult
}

func (h *recordingHandler) Types() (reflect.Type, reflect.Type) {
	return engine.TypeOf[payload](), engine.TypeOf[hull]()
}

func (h *recordingHandler) Handle(w *engine.World, first, second core.Entity) CollisionResult {
	*h.hits = append(*h.hits, recordedHit{first, second})
	return h.consume
}

func TestIntegration(t *testing.T) {
	w := newTestWorld()
	space := NewSpace()
	w.AddSystem(space)

	b := &Body{Mass: 2, Size: 1, Collideable: true, Velocity: vmath.V(10, 0)}
	spawnBody(t, w, b)
	w.Tick(0) // flush

	b.ApplyForce(vmath.V(0, 20))
	w.Tick(0.5)

	// v += F/m * dt -> (10, 5); p += v * dt -> (5, 2.5).
	assert.InDelta(t, 10.0, b.Velocity.X, 1e-9)
	assert.InDelta(t, 5.0, b.Velocity.Y, 1e-9)
	assert.InDelta(t, 5.0, b.Position.X, 1e-9)
	assert.InDelta(t, 2.5, b.Position.Y, 1e-9)

	// The force accumulator resets each tick: no further acceleration.
	w.Tick(0.5)
	assert.InDelta(t, 5.0, b.Velocity.Y, 1e-9)
}

func TestAngularIntegration(t *testing.T) {
	w := newTestWorld()
	w.AddSystem(NewSpace())

	b := &Body{Mass: 1, Size: 1, AngularVelocity: 90}
	spawnBody(t, w, b)
	w.Tick(0)

	w.Tick(0.5)
	assert.InDelta(t, 45.0, b.Orientation, 1e-9)
}

func TestImmovableBodyIgnoresForce(t *testing.T) {
	w := newTestWorld()
	w.AddSystem(NewSpace())

	b := &Body{Mass: 0, Size: 3, Collideable: true}
	spawnBody(t, w, b)
	w.Tick(0)

	b.ApplyForce(vmath.V(1000, 0))
	w.Tick(1)
	assert.Equal(t, vmath.Vec2{}, b.Velocity)
	assert.Equal(t, vmath.Vec2{}, b.Position)
}

func TestThrusterForcesApplied(t *testing.T) {
	w := newTestWorld()
	w.AddSystem(NewSpace())

	th := &Thruster{Position: vmath.Vec2{}, Direction: vmath.V(0, -1), MaxForce: 100}
	b := &Body{Mass: 10, Thrusters: []*Thruster{th}}
	spawnBody(t, w, b)
	w.Tick(0)

	th.SetOn(true)
	w.Tick(0.1)
	assert.InDelta(t, -1.0, b.Velocity.Y, 1e-9, "v = F/m * dt = 100/10 * 0.1")

	th.SetOn(false)
	w.Tick(0.1)
	assert.InDelta(t, -1.0, b.Velocity.Y, 1e-9)
}

func TestPinnedBodyFollowsParent(t *testing.T) {
	w := newTestWorld()
	w.AddSystem(NewSpace())

	parent := &Body{Mass: 100, Size: 10}
	child := &Body{Mass: 1, Size: 2, Position: vmath.V(10, 0)}
	spawnBody(t, w, parent)
	spawnBody(t, w, child)
	w.Tick(0)

	child.PinTo(parent)

	// Forces on the child are ignored entirely while pinned.
	child.ApplyForce(vmath.V(0, 99999))
	parent.Position = vmath.V(5, 5)
	w.Tick(0.1)

	assert.InDelta(t, 15.0, child.Position.X, 1e-9)
	assert.InDelta(t, 5.0, child.Position.Y, 1e-9)
	assert.Equal(t, parent.Velocity, child.Velocity)
}

func TestPinnedBodyRotatesWithParent(t *testing.T) {
	w := newTestWorld()
	w.AddSystem(NewSpace())

	parent := &Body{Mass: 100, Size: 10}
	child := &Body{Mass: 1, Size: 2, Position: vmath.V(10, 0)}
	spawnBody(t, w, parent)
	spawnBody(t, w, child)
	w.Tick(0)

	child.PinTo(parent)
	parent.Orientation = 90
	w.Tick(0.1)

	assert.InDelta(t, 0.0, child.Position.X, 1e-9)
	assert.InDelta(t, 10.0, child.Position.Y, 1e-9)
	assert.InDelta(t, 90.0, child.Orientation, 1e-9)
}

func TestUnpinResumesFreeIntegration(t *testing.T) {
	w := newTestWorld()
	w.AddSystem(NewSpace())

	parent := &Body{Mass: 100, Size: 10, Velocity: vmath.V(1, 0)}
	child := &Body{Mass: 1, Size: 2, Position: vmath.V(10, 0)}
	spawnBody(t, w, parent)
	spawnBody(t, w, child)
	w.Tick(0)

	child.PinTo(parent)
	w.Tick(1)
	require.True(t, child.Pinned())

	child.Unpin()
	child.Velocity = vmath.Vec2{}
	pos := child.Position
	w.Tick(1)
	assert.Equal(t, pos, child.Position, "unpinned body with no velocity stays put")
}

func TestCollisionDetection(t *testing.T) {
	w := newTestWorld()
	space := NewSpace()
	w.AddSystem(space)

	hits := []recordedHit{}
	space.AddCollisionHandler(&recordingHandler{hits: &hits})

	// Sizes sum to 4, distance 3: overlap.
	e1, _ := w.CreateEntityWith(&Body{Mass: 1, Size: 2, Collideable: true}, &payload{})
	e2, _ := w.CreateEntityWith(
		&Body{Mass: 1, Size: 2, Position: vmath.V(0, 3), Collideable: true}, &hull{})

	w.Tick(0)
	require.Len(t, hits, 1, "damage handler fires exactly once this tick")
	assert.Equal(t, recordedHit{e1, e2}, hits[0])
}

func TestNoCollisionWhenApart(t *testing.T) {
	w := newTestWorld()
	space := NewSpace()
	w.AddSystem(space)

	hits := []recordedHit{}
	space.AddCollisionHandler(&recordingHandler{hits: &hits})

	_, _ = w.CreateEntityWith(&Body{Mass: 1, Size: 2, Collideable: true}, &payload{})
	_, _ = w.CreateEntityWith(
		&Body{Mass: 1, Size: 2, Position: vmath.V(0, 5), Collideable: true}, &hull{})
	w.Tick(0)
	assert.Empty(t, hits)
}

func TestNonCollideableBodiesIgnored(t *testing.T) {
	w := newTestWorld()
	space := NewSpace()
	w.AddSystem(space)

	hits := []recordedHit{}
	space.AddCollisionHandler(&recordingHandler{hits: &hits})

	_, _ = w.CreateEntityWith(&Body{Mass: 1, Size: 2, Collideable: false}, &payload{})
	_, _ = w.CreateEntityWith(&Body{Mass: 1, Size: 2, Collideable: true}, &hull{})
	w.Tick(0)
	assert.Empty(t, hits)
}

func TestHandlerDispatchOrderSymmetric(t *testing.T) {
	// Same scene twice with the component roles swapped between the two
	// physical bodies; the handler must receive (payload, hull) both times.
	for _, swapped := range []bool{false, true} {
		w := newTestWorld()
		space := NewSpace()
		w.AddSystem(space)

		hits := []recordedHit{}
		space.AddCollisionHandler(&recordingHandler{hits: &hits})

		first := engine.Component(&payload{})
		second := engine.Component(&hull{})
		if swapped {
			first, second = second, first
		}
		e1, _ := w.CreateEntityWith(&Body{Mass: 1, Size: 2, Collideable: true}, first)
		e2, _ := w.CreateEntityWith(
			&Body{Mass: 1, Size: 2, Position: vmath.V(0, 3), Collideable: true}, second)
		w.Tick(0)

		require.Len(t, hits, 1)
		wantFirst, wantSecond := e1, e2
		if swapped {
			wantFirst, wantSecond = e2, e1
		}
		assert.Equal(t, recordedHit{wantFirst, wantSecond}, hits[0],
			"swapped=%v", swapped)
	}
}

func TestConsumedEntityExcludedThisPass(t *testing.T) {
	w := newTestWorld()
	space := NewSpace()
	w.AddSystem(space)

	hits := []recordedHit{}
	space.AddCollisionHandler(&recordingHandler{
		hits:    &hits,
		consume: CollisionResult{ConsumedFirst: true, ConsumedSecond: true},
	})

	// One payload overlapping two hulls: consuming the payload on the first
	// pair stops the second pair this tick.
	_, _ = w.CreateEntityWith(&Body{Mass: 1, Size: 2, Collideable: true}, &payload{})
	_, _ = w.CreateEntityWith(
		&Body{Mass: 1, Size: 2, Position: vmath.V(0, 3), Collideable: true}, &hull{})
	_, _ = w.CreateEntityWith(
		&Body{Mass: 1, Size: 2, Position: vmath.V(0, -3), Collideable: true}, &hull{})

	w.Tick(0)
	assert.Len(t, hits, 1, "consumed side matches no further handlers this pass")

	hits = hits[:0]
	w.Tick(0)
	assert.Len(t, hits, 1, "consumption does not carry over to future ticks")
}

func TestPinnedPairDoesNotCollide(t *testing.T) {
	w := newTestWorld()
	space := NewSpace()
	w.AddSystem(space)

	hits := []recordedHit{}
	space.AddCollisionHandler(&recordingHandler{hits: &hits})

	parentBody := &Body{Mass: 10, Size: 5, Collideable: true}
	childBody := &Body{Mass: 1, Size: 2, Position: vmath.V(3, 0), Collideable: true}
	_, _ = w.CreateEntityWith(parentBody, &hull{})
	_, _ = w.CreateEntityWith(childBody, &payload{})
	childBody.PinTo(parentBody)

	w.Tick(0)
	assert.Empty(t, hits, "a body does not collide with the body it is pinned to")
}

func TestClosestBodyWith(t *testing.T) {
	w := newTestWorld()
	space := NewSpace()
	w.AddSystem(space)

	near := &Body{Mass: 1, Size: 1, Position: vmath.V(10, 0), Collideable: true}
	far := &Body{Mass: 1, Size: 1, Position: vmath.V(50, 0), Collideable: true}
	ghost := &Body{Mass: 1, Size: 1, Position: vmath.V(1, 0), Collideable: false}
	spawnBody(t, w, near)
	spawnBody(t, w, far)
	spawnBody(t, w, ghost)
	w.Tick(0)

	all := func(*Body) bool { return true }
	got := space.ClosestBodyWith(w, vmath.Vec2{}, all)
	require.NotNil(t, got)
	assert.Same(t, near, got, "non-collideable bodies are never candidates")

	none := func(*Body) bool { return false }
	assert.Nil(t, space.ClosestBodyWith(w, vmath.Vec2{}, none))

	onlyFar := func(b *Body) bool { return b.Position.X > 20 }
	assert.Same(t, far, space.ClosestBodyWith(w, vmath.Vec2{}, onlyFar))
}

func TestHitScan(t *testing.T) {
	w := newTestWorld()
	space := NewSpace()
	w.AddSystem(space)

	shooter := &Body{Mass: 1, Size: 5, Collideable: true}
	target := &Body{Mass: 1, Size: 2, Position: vmath.V(0, -50), Collideable: true}
	behind := &Body{Mass: 1, Size: 2, Position: vmath.V(0, -80), Collideable: true}
	shooterEnt := spawnBody(t, w, shooter)
	spawnBody(t, w, target)
	spawnBody(t, w, behind)
	w.Tick(0)

	// -Y is the shooter's forward direction.
	res := space.HitScan(w, shooter, vmath.Vec2{}, vmath.V(0, -1), 1000, 1)
	require.NotNil(t, res.Body)
	assert.Same(t, target, res.Body, "nearest hit wins")
	assert.InDelta(t, -47.0, res.Point.Y, 1e-9, "impact at target edge plus ray radius")

	// A child of the shooter sitting on the ray is skipped.
	mount := &Body{Mass: 1, Size: 3, Position: vmath.V(0, -20), Collideable: true}
	mountEnt := spawnBody(t, w, mount)
	w.Tick(0)
	w.SetParent(mountEnt, shooterEnt)

	res = space.HitScan(w, shooter, vmath.Vec2{}, vmath.V(0, -1), 1000, 1)
	assert.Same(t, target, res.Body, "ancestor chain is excluded from the scan")

	// Out of range: clean miss, point at max range.
	res = space.HitScan(w, shooter, vmath.Vec2{}, vmath.V(0, -1), 10, 1)
	assert.Nil(t, res.Body)
	assert.InDelta(t, -10.0, res.Point.Y, 1e-9)
}
