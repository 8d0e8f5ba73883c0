package component

import (
	"github.com/lmcneill42/space-game/config"
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/vmath"
)

// Weapon styles.
const (
	WeaponProjectile = "projectile_thrower"
	WeaponBeam       = "beam"
)

// Weapon shoots bullets or a continuous beam while switched on. The weapon
// itself is pure state; the weapon system does the spawning, power draw and
// beam damage.
type Weapon struct {
	Type string

	// Projectile parameters.
	ShotsPerSecond float64
	BulletSpeed    float64
	SpreadDegrees  float64
	BulletConfig   string

	// Beam parameters.
	Damage     float64
	Range      float64
	Radius     float64
	PowerUsage float64

	// ShotTimer counts down to the next permitted shot. It may go negative
	// while idle, allowing several shots in one tick at high rates of fire.
	ShotTimer float64

	shooting   bool
	shootingAt DirectionProvider

	// Where the beam last landed, for renderers. Zero while not firing.
	ImpactPoint  vmath.Vec2
	ImpactNormal vmath.Vec2
	BeamActive   bool
}

// NewWeapon builds a Weapon from config. Projectile weapons require
// "bullet_config"; beams require "damage" and "range".
func NewWeapon(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	wpn := &Weapon{
		Type:           cfg.StringOr("type", WeaponProjectile),
		ShotsPerSecond: cfg.FloatOr("shots_per_second", 1),
		BulletSpeed:    cfg.FloatOr("bullet_speed", 1000),
		SpreadDegrees:  cfg.FloatOr("spread", 0),
		Damage:         cfg.FloatOr("damage", 0),
		Range:          cfg.FloatOr("range", 0),
		Radius:         cfg.FloatOr("radius", 0),
		PowerUsage:     cfg.FloatOr("power_usage", 0),
	}
	if wpn.ShotsPerSecond <= 0 {
		return nil, &config.Error{File: cfg.File(), Key: "shots_per_second", Detail: "must be positive"}
	}
	switch wpn.Type {
	case WeaponProjectile:
		name, err := cfg.String("bullet_config")
		if err != nil {
			return nil, err
		}
		wpn.BulletConfig = name
	case WeaponBeam:
		if _, err := cfg.Float("damage"); err != nil {
			return nil, err
		}
		if _, err := cfg.Float("range"); err != nil {
			return nil, err
		}
	}
	return wpn, nil
}

// StartShooting switches the weapon on, aimed by the given provider. Calling
// it while already shooting re-aims without resetting the shot cadence.
func (wpn *Weapon) StartShooting(dir DirectionProvider) {
	wpn.shooting = true
	wpn.shootingAt = dir
}

// StopShooting switches the weapon off.
func (wpn *Weapon) StopShooting() {
	wpn.shooting = false
	wpn.shootingAt = nil
	wpn.BeamActive = false
}

// Shooting reports whether the weapon is switched on.
func (wpn *Weapon) Shooting() bool {
	return wpn.shooting
}

// AimDirection evaluates the current direction provider. Zero when the
// weapon is off or the provider dangles.
func (wpn *Weapon) AimDirection(w *engine.World) vmath.Vec2 {
	if !wpn.shooting || wpn.shootingAt == nil {
		return vmath.Vec2{}
	}
	return wpn.shootingAt.Direction(w)
}
