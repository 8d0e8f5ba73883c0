package component

import (
	"github.com/lmcneill42/space-game/config"
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
)

// Hitpoints is the entity's structural health. It reaches zero, the entity
// dies. Damage routing (shields first, then hitpoints) is in package system.
type Hitpoints struct {
	HP    float64
	MaxHP float64
}

// NewHitpoints builds a Hitpoints from config; "hp" is required.
func NewHitpoints(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	hp, err := cfg.Float("hp")
	if err != nil {
		return nil, err
	}
	return &Hitpoints{HP: hp, MaxHP: hp}, nil
}

// Shields absorb damage before it reaches hitpoints. They recharge by
// drawing from the entity's Power and overload for a while when knocked to
// zero.
type Shields struct {
	HP            float64
	MaxHP         float64
	RechargeRate  float64
	Overloaded    bool
	OverloadTimer core.Timer
}

// NewShields builds a Shields from config; "hp" and "recharge_rate" are
// required.
func NewShields(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	hp, err := cfg.Float("hp")
	if err != nil {
		return nil, err
	}
	rate, err := cfg.Float("recharge_rate")
	if err != nil {
		return nil, err
	}
	return &Shields{
		HP:            hp,
		MaxHP:         hp,
		RechargeRate:  rate,
		OverloadTimer: core.NewTimer(cfg.FloatOr("overload_time", 5)),
	}, nil
}

// Overload drops the shields and starts the recovery countdown.
func (s *Shields) Overload() {
	s.HP = 0
	s.Overloaded = true
	s.OverloadTimer.Accumulator = 0
}

// Power is the entity's energy store. Shields and beam weapons draw from it;
// draining it completely overloads it for a while.
type Power struct {
	Capacity      float64
	Power         float64
	RechargeRate  float64
	Overloaded    bool
	OverloadTimer core.Timer
}

// NewPower builds a Power from config; "capacity" and "recharge_rate" are
// required. The store starts full.
func NewPower(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	capacity, err := cfg.Float("capacity")
	if err != nil {
		return nil, err
	}
	rate, err := cfg.Float("recharge_rate")
	if err != nil {
		return nil, err
	}
	return &Power{
		Capacity:      capacity,
		Power:         capacity,
		RechargeRate:  rate,
		OverloadTimer: core.NewTimer(cfg.FloatOr("overload_time", 5)),
	}, nil
}

// Consume draws up to amount from the store and returns how much was
// actually drawn. An overloaded store yields nothing.
func (p *Power) Consume(amount float64) float64 {
	if p.Overloaded || amount <= 0 {
		return 0
	}
	if amount > p.Power {
		amount = p.Power
	}
	p.Power -= amount
	return amount
}

// TryConsume draws exactly amount, or nothing. Asking for more than the
// store holds overloads it, so holding a beam on an empty battery has a
// cost.
func (p *Power) TryConsume(amount float64) bool {
	if p.Overloaded {
		return false
	}
	if amount > p.Power {
		p.Power = 0
		p.Overloaded = true
		p.OverloadTimer.Accumulator = 0
		return false
	}
	p.Power -= amount
	return true
}
