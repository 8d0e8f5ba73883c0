package component

import (
	"github.com/lmcneill42/space-game/config"
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
)

// Tracking keeps a weak reference to a hostile body. The tracking system
// acquires the nearest hostile when the reference is empty or dangles.
type Tracking struct {
	Tracked engine.Ref
}

func NewTracking(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	return &Tracking{}, nil
}

// FollowsTracked makes the entity fly towards whatever it is tracking,
// easing off as it closes to the desired distance.
type FollowsTracked struct {
	DesiredDistance float64
	Acceleration    float64
}

func NewFollowsTracked(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	accel, err := cfg.Float("acceleration")
	if err != nil {
		return nil, err
	}
	return &FollowsTracked{
		DesiredDistance: cfg.FloatOr("desired_distance_to_player", 500),
		Acceleration:    accel,
	}, nil
}

// ShootsAtTracked is burst fire control: orient towards the tracked body,
// wait for the fire timer, check the line of fire, shoot for a burst, rest.
type ShootsAtTracked struct {
	FireTimer  core.Timer
	BurstTimer core.Timer
	CanShoot   bool
}

func NewShootsAtTracked(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	s := &ShootsAtTracked{
		FireTimer:  core.NewTimer(cfg.FloatOr("fire_period", 1)),
		BurstTimer: core.NewTimer(cfg.FloatOr("burst_period", 1)),
	}
	// Nearly ready to fire on spawn, so a fresh enemy is a prompt threat.
	s.FireTimer.AdvanceToFraction(0.8)
	return s, nil
}

// LaunchesFighters spawns a batch of fighters periodically, aimed roughly at
// the tracked entity.
type LaunchesFighters struct {
	SpawnTimer    core.Timer
	FighterConfig string
	NumFighters   int
	TakeoffSpread float64
	TakeoffSpeed  float64
}

func NewLaunchesFighters(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	period, err := cfg.Float("spawn_period")
	if err != nil {
		return nil, err
	}
	fighter, err := cfg.String("fighter_config")
	if err != nil {
		return nil, err
	}
	l := &LaunchesFighters{
		SpawnTimer:    core.NewTimer(period),
		FighterConfig: fighter,
		NumFighters:   cfg.IntOr("num_fighters", 5),
		TakeoffSpread: cfg.FloatOr("takeoff_spread", 30),
		TakeoffSpeed:  cfg.FloatOr("takeoff_speed", 50),
	}
	l.SpawnTimer.AdvanceToFraction(0.8)
	return l, nil
}
