package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmcneill42/space-game/component"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/physics"
)

const dt = 1.0 / 60

func newGame(t *testing.T) *Game {
	t.Helper()
	g, err := New(Options{Seed: 7})
	require.NoError(t, err)
	return g
}

func TestNewGameSpawnsPlayerAndCamera(t *testing.T) {
	g := newGame(t)
	g.Tick(dt)

	player := g.Player()
	require.False(t, player.IsNil())
	w := g.World()
	require.True(t, engine.Has[physics.Body](w, player))
	team := engine.Get[component.Team](w, player)
	require.NotNil(t, team)
	assert.Equal(t, "player", team.Name)

	camera := w.Resources.Camera.Entity(w)
	require.False(t, camera.IsNil())
	cam := engine.Get[component.Camera](w, camera)
	require.NotNil(t, cam)
	assert.Equal(t, player, cam.Tracked.Target(), "camera follows the player")
}

func TestContentValidates(t *testing.T) {
	// New fails fast on a bad archetype, so a clean construction means
	// every embedded document names only registered components.
	_, err := New(Options{})
	assert.NoError(t, err)
}

func TestWaveProgression(t *testing.T) {
	g := newGame(t)
	w := g.World()

	g.Tick(dt)
	messages := w.Query(engine.TypeOf[component.Text]())
	require.Empty(t, messages, "announcement is pending on the tick it is created")
	g.Tick(dt)
	messages = w.Query(engine.TypeOf[component.Text]())
	require.Len(t, messages, 1)
	text := engine.Get[component.Text](w, messages[0])
	assert.Equal(t, "WAVE 1 PREPARING", text.Value)

	// Run past the announcement's lifetime; the first wave then spawns.
	for i := 0; i < 4*60; i++ {
		g.Tick(dt)
	}
	assert.Equal(t, 2, g.Wave())

	enemies := 0
	for _, e := range w.Query(engine.TypeOf[component.Team]()) {
		if engine.Get[component.Team](w, e).Name == "enemy" {
			enemies++
		}
	}
	assert.GreaterOrEqual(t, enemies, 1, "wave one puts an enemy in play")
	assert.False(t, g.Over())
}

func TestPlayerDeathEndsGame(t *testing.T) {
	g := newGame(t)
	g.Tick(dt)

	w := g.World()
	w.Kill(g.Player())
	assert.True(t, g.Over(), "end-of-program hook fires synchronously")
	assert.True(t, g.Player().IsNil())

	// The world keeps ticking; the spawner notices and posts the banner.
	g.Tick(dt)
	g.Tick(dt)
	found := false
	for _, e := range w.Query(engine.TypeOf[component.Text]()) {
		if engine.Get[component.Text](w, e).Value == "GAME OVER" {
			found = true
		}
	}
	assert.True(t, found)
}
