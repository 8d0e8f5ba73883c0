package component

import (
	"go.uber.org/zap"

	"github.com/lmcneill42/space-game/config"
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/physics"
)

// KillOnTimer destroys the entity once its lifetime runs out. Bullets and
// explosions use it so strays do not accumulate.
type KillOnTimer struct {
	Lifetime core.Timer
}

func NewKillOnTimer(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	lifetime, err := cfg.Float("lifetime")
	if err != nil {
		return nil, err
	}
	return &KillOnTimer{Lifetime: core.NewTimer(lifetime)}, nil
}

// ExplodesOnDeath spawns an explosion where the entity died and shakes the
// camera.
type ExplodesOnDeath struct {
	ExplosionConfig string
	ShakeFactor     float64
}

func NewExplodesOnDeath(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	name, err := cfg.String("explosion_config")
	if err != nil {
		return nil, err
	}
	return &ExplodesOnDeath{
		ExplosionConfig: name,
		ShakeFactor:     cfg.FloatOr("shake_factor", 1),
	}, nil
}

// OnKilled spawns the configured explosion at the dying entity's position
// and velocity. The explosion surfaces at the next flush like any other
// spawn.
func (x *ExplodesOnDeath) OnKilled(w *engine.World, e core.Entity) {
	body := engine.Get[physics.Body](w, e)
	if body == nil {
		return
	}
	_, err := w.CreateEntity(x.ExplosionConfig, engine.Overrides{
		"position": body.Position,
		"velocity": body.Velocity,
	})
	if err != nil {
		w.Resources.Log.Error("spawning explosion",
			zap.String("config", x.ExplosionConfig), zap.Error(err))
		return
	}
	if cam := engine.Deref[Camera](w, w.Resources.Camera); cam != nil {
		cam.ApplyShake(x.ShakeFactor, body.Position)
	}
}

// EndProgramOnDeath raises the world's game-over flag when the entity dies.
// It goes on the player.
type EndProgramOnDeath struct{}

func NewEndProgramOnDeath(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	return &EndProgramOnDeath{}, nil
}

func (EndProgramOnDeath) OnKilled(w *engine.World, e core.Entity) {
	w.Resources.GameOver = true
}

// DamageOnContact makes the entity hurt whatever it touches. The damage
// collision handler consumes the entity on delivery when DestroyOnHit is
// set, which is how bullets work.
type DamageOnContact struct {
	Damage       float64
	DestroyOnHit bool
}

func NewDamageOnContact(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	damage, err := cfg.Float("damage")
	if err != nil {
		return nil, err
	}
	return &DamageOnContact{
		Damage:       damage,
		DestroyOnHit: cfg.BoolOr("destroy_on_hit", true),
	}, nil
}
