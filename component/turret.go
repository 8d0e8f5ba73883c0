package component

import (
	"go.uber.org/zap"

	"github.com/lmcneill42/space-game/config"
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/physics"
	"github.com/lmcneill42/space-game/vmath"
)

// turretMount is one hardpoint: the archetype to spawn there and where on
// the hull it sits, in ship-local coordinates.
type turretMount struct {
	Config   string
	Position vmath.Vec2
}

// Turrets spawns a turret entity per configured mount and pins each one to
// the hull. Turrets are children of the ship: they die with it, and the
// ancestor exclusions keep them from scanning or shooting their own mount.
type Turrets struct {
	Spawned []engine.Ref

	mounts []turretMount
	entity core.Entity
}

// NewTurrets builds the mount list from config. Each entry under "turrets"
// needs a "config" archetype name and takes an optional hull position.
func NewTurrets(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	t := &Turrets{entity: e}
	for _, mc := range cfg.List("turrets") {
		name, err := mc.String("config")
		if err != nil {
			return nil, err
		}
		t.mounts = append(t.mounts, turretMount{
			Config:   name,
			Position: mc.Vec2Or("position", vmath.Vec2{}),
		})
	}
	return t, nil
}

// Setup spawns and pins the turrets. Runs after the ship's own Setup pass
// has settled its transform, so the captured pin offsets are the mount
// positions.
func (t *Turrets) Setup(w *engine.World, ov engine.Overrides) {
	ship := engine.Get[physics.Body](w, t.entity)
	if ship == nil {
		return
	}
	side, ok := ov.String("team")
	if !ok {
		if tm := engine.Get[Team](w, t.entity); tm != nil {
			side = tm.Name
		}
	}
	for _, m := range t.mounts {
		overrides := engine.Overrides{
			"parent":      t.entity,
			"position":    ship.LocalToWorld(m.Position),
			"orientation": ship.Orientation,
		}
		if side != "" {
			overrides["team"] = side
		}
		e, err := w.CreateEntity(m.Config, overrides)
		if err != nil {
			w.Resources.Log.Error("spawning turret",
				zap.String("config", m.Config), zap.Error(err))
			continue
		}
		if tb := engine.Get[physics.Body](w, e); tb != nil {
			tb.PinTo(ship)
		}
		t.Spawned = append(t.Spawned, engine.NewRef(e))
	}
}

// StartShooting switches every turret weapon on, aimed by the provider.
func (t *Turrets) StartShooting(w *engine.World, dir DirectionProvider) {
	for _, ref := range t.Spawned {
		if wpn := engine.Deref[Weapon](w, ref); wpn != nil {
			wpn.StartShooting(dir)
		}
	}
}

// StopShooting switches every turret weapon off.
func (t *Turrets) StopShooting(w *engine.World) {
	for _, ref := range t.Spawned {
		if wpn := engine.Deref[Weapon](w, ref); wpn != nil {
			wpn.StopShooting()
		}
	}
}
