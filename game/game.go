// Package game wires the kernel together: the component registry, the
// content set, the system order and the collision handlers. It owns nothing
// the engine does not already provide; it just assembles it.
package game

import (
	"io/fs"

	"go.uber.org/zap"

	"github.com/lmcneill42/space-game/component"
	"github.com/lmcneill42/space-game/config"
	"github.com/lmcneill42/space-game/content"
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/physics"
	"github.com/lmcneill42/space-game/system"
)

// Options configures a new game.
type Options struct {
	// Log receives structured events from the world and systems. Nil means
	// no logging.
	Log *zap.Logger

	// Seed fixes the random source. The simulation is deterministic for a
	// fixed seed and tick sequence.
	Seed int64

	// Content overrides the embedded archetype set. Nil means the built-in
	// content.
	Content fs.FS
}

// Game is a running simulation.
type Game struct {
	world   *engine.World
	space   *physics.Space
	spawner *system.WaveSpawnerSystem
}

// NewRegistry returns the component registry with every gameplay component
// registered under its archetype name.
func NewRegistry() *engine.Registry {
	reg := engine.NewRegistry()
	reg.Register("body", physics.NewBody)
	reg.Register("team", component.NewTeam)
	reg.Register("hitpoints", component.NewHitpoints)
	reg.Register("shields", component.NewShields)
	reg.Register("power", component.NewPower)
	reg.Register("weapon", component.NewWeapon)
	reg.Register("tracking", component.NewTracking)
	reg.Register("follows_tracked", component.NewFollowsTracked)
	reg.Register("shoots_at_tracked", component.NewShootsAtTracked)
	reg.Register("launches_fighters", component.NewLaunchesFighters)
	reg.Register("turrets", component.NewTurrets)
	reg.Register("kill_on_timer", component.NewKillOnTimer)
	reg.Register("explodes_on_death", component.NewExplodesOnDeath)
	reg.Register("end_program_on_death", component.NewEndProgramOnDeath)
	reg.Register("damage_on_contact", component.NewDamageOnContact)
	reg.Register("thrusters", component.NewThrusters)
	reg.Register("text", component.NewText)
	reg.Register("camera", component.NewCamera)
	reg.Register("animation", component.NewAnimationFrames)
	return reg
}

// New assembles a world, validates every content document against the
// registry, registers the systems and collision handlers, and spawns the
// camera and the player.
func New(opts Options) (*Game, error) {
	fsys := opts.Content
	if fsys == nil {
		fsys = content.Files
	}
	loader := config.NewLoader(fsys)
	reg := NewRegistry()
	if err := validateContent(reg, loader); err != nil {
		return nil, err
	}

	w := engine.NewWorld(reg, loader, opts.Log)
	if opts.Seed != 0 {
		w.Resources.Seed(opts.Seed)
	}

	space := physics.NewSpace()
	space.AddCollisionHandler(system.DamageCollisionHandler{})

	spawner := system.NewWaveSpawnerSystem(
		[]string{"enemies/destroyer.yaml", "enemies/carrier.yaml"},
		"messages/update.yaml",
		"messages/endgame.yaml",
	)

	w.AddSystem(system.NewTrackingSystem(space))
	w.AddSystem(system.NewFollowsTrackedSystem())
	w.AddSystem(system.NewShootsAtTrackedSystem(space))
	w.AddSystem(system.NewLaunchesFightersSystem())
	w.AddSystem(system.NewWeaponSystem(space))
	w.AddSystem(system.NewThrustersSystem())
	w.AddSystem(space)
	w.AddSystem(system.NewPowerSystem())
	w.AddSystem(system.NewShieldSystem())
	w.AddSystem(system.NewKillOnTimerSystem())
	w.AddSystem(system.NewAnimationSystem())
	w.AddSystem(system.NewTextSystem())
	w.AddSystem(system.NewCameraSystem())
	w.AddSystem(spawner)

	g := &Game{world: w, space: space, spawner: spawner}
	if err := g.spawnInitialEntities(); err != nil {
		return nil, err
	}
	return g, nil
}

// validateContent checks every document's component names against the
// registry, so a typo in an archetype fails at startup rather than at first
// spawn.
func validateContent(reg *engine.Registry, loader *config.Loader) error {
	names, err := loader.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		cfg, err := loader.Load(name)
		if err != nil {
			return err
		}
		if err := reg.Validate(cfg); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) spawnInitialEntities() error {
	camera, err := g.world.CreateEntity("camera.yaml", nil)
	if err != nil {
		return err
	}
	g.world.Resources.Camera.Set(camera)

	player, err := g.world.CreateEntity("player.yaml", nil)
	if err != nil {
		return err
	}
	g.world.Resources.Player.Set(player)

	if cam := engine.Get[component.Camera](g.world, camera); cam != nil {
		cam.Tracked.Set(player)
	}
	return nil
}

// Tick advances the simulation by dt seconds. Pausing is simply not calling
// Tick.
func (g *Game) Tick(dt float64) {
	g.world.Tick(dt)
}

// World exposes the underlying world for read surfaces and spawning.
func (g *Game) World() *engine.World {
	return g.world
}

// Space exposes the physics space, for hit scans and body queries.
func (g *Game) Space() *physics.Space {
	return g.space
}

// Player returns the player's entity handle. Nil handle after the player
// has died.
func (g *Game) Player() core.Entity {
	return g.world.Resources.Player.Entity(g.world)
}

// Wave returns the current wave number.
func (g *Game) Wave() int {
	return g.spawner.Wave()
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.world.Resources.GameOver
}
