package physics

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lmcneill42/space-game/config"
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/vmath"
)

func newTestWorld() *engine.World {
	return engine.NewWorld(engine.NewRegistry(), config.NewLoader(fstest.MapFS{}), zap.NewNop())
}

func spawnBody(t *testing.T, w *engine.World, b *Body) core.Entity {
	t.Helper()
	e, err := w.CreateEntityWith(b)
	require.NoError(t, err)
	return e
}

func TestNewBodyFromConfig(t *testing.T) {
	doc := `
mass: 100
size: 35
thrusters:
  - position: {x: -20, y: 0}
    direction: {x: 0, y: -1}
    max_force: 1000
`
	cfg, err := config.Parse([]byte(doc), "body.yaml")
	require.NoError(t, err)

	comp, err := NewBody(core.NilEntity, nil, cfg)
	require.NoError(t, err)
	b := comp.(*Body)

	assert.Equal(t, 100.0, b.Mass)
	assert.Equal(t, 35.0, b.Size)
	assert.True(t, b.Collideable)
	require.Len(t, b.Thrusters, 1)
	assert.Equal(t, vmath.V(-20, 0), b.Thrusters[0].Position)
	assert.Equal(t, 1000.0, b.Thrusters[0].MaxForce)
}

func TestNewBodyRejectsNegativeParameters(t *testing.T) {
	cfg, err := config.Parse([]byte("mass: -5"), "bad.yaml")
	require.NoError(t, err)
	_, err = NewBody(core.NilEntity, nil, cfg)
	var cerr *config.Error
	require.ErrorAs(t, err, &cerr)
}

func TestBodySetupOverrides(t *testing.T) {
	b := &Body{Mass: 1, Size: 5, Collideable: true}
	b.Setup(nil, engine.Overrides{
		"position": vmath.V(10, 20),
		"velocity": vmath.V(0, -100),
	})

	assert.Equal(t, vmath.V(10, 20), b.Position)
	assert.Equal(t, vmath.V(0, -100), b.Velocity)
	// Facing along the velocity: (0,-1) is -90 degrees, +90 puts the nose at 0.
	assert.InDelta(t, 0.0, b.Orientation, 1e-9)
}

func TestLocalWorldRoundTrip(t *testing.T) {
	b := &Body{Position: vmath.V(100, 50), Orientation: 90}

	world := b.LocalToWorld(vmath.V(10, 0))
	assert.InDelta(t, 100.0, world.X, 1e-9)
	assert.InDelta(t, 60.0, world.Y, 1e-9)

	back := b.WorldToLocal(world)
	assert.InDelta(t, 10.0, back.X, 1e-9)
	assert.InDelta(t, 0.0, back.Y, 1e-9)
}

func TestFireCorrectThrusters(t *testing.T) {
	// Two rear thrusters pointing forward (-Y), one lateral thruster on the
	// nose producing pure torque.
	left := &Thruster{Position: vmath.V(-20, 10), Direction: vmath.V(0, -1), MaxForce: 100}
	right := &Thruster{Position: vmath.V(20, 10), Direction: vmath.V(0, -1), MaxForce: 100}
	nose := &Thruster{Position: vmath.V(0, -10), Direction: vmath.V(1, 0), MaxForce: 10}
	b := &Body{Mass: 1, Thrusters: []*Thruster{left, right, nose}}

	b.FireCorrectThrusters(vmath.V(0, -1), 0)
	assert.True(t, left.On())
	assert.True(t, right.On())
	assert.False(t, nose.On())

	// nose torque = (0,-10) x (1,0) = 10 > 0, so it serves positive turn.
	b.FireCorrectThrusters(vmath.Vec2{}, 1)
	assert.False(t, left.On() && right.On(),
		"a pure turn must not fire both opposed rear thrusters")
	assert.True(t, nose.On())

	b.FireCorrectThrusters(vmath.Vec2{}, 0)
	assert.False(t, left.On())
	assert.False(t, right.On())
	assert.False(t, nose.On())
}

func TestThrusterWorldTransform(t *testing.T) {
	th := &Thruster{Position: vmath.V(0, 10), Direction: vmath.V(0, -1)}
	b := &Body{Position: vmath.V(5, 5), Orientation: 180}

	pos := th.WorldPosition(b)
	assert.InDelta(t, 5.0, pos.X, 1e-9)
	assert.InDelta(t, -5.0, pos.Y, 1e-9)

	dir := th.WorldDirection(b)
	assert.InDelta(t, 0.0, dir.X, 1e-9)
	assert.InDelta(t, 1.0, dir.Y, 1e-9)
}
