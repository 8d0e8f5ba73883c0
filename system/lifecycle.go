package system

import (
	"github.com/lmcneill42/space-game/component"
	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/parameter"
)

// PowerSystem recharges power stores and recovers them from overload.
type PowerSystem struct{}

func NewPowerSystem() *PowerSystem {
	return &PowerSystem{}
}

func (s *PowerSystem) Priority() int {
	return parameter.PriorityPower
}

func (s *PowerSystem) Update(w *engine.World, dt float64) {
	for _, e := range w.Query(engine.TypeOf[component.Power]()) {
		power := engine.Get[component.Power](w, e)
		if power.Overloaded {
			if power.OverloadTimer.Tick(dt) {
				power.Overloaded = false
				power.OverloadTimer.Reset()
			}
			continue
		}
		power.Power += power.RechargeRate * dt
		if power.Power > power.Capacity {
			power.Power = power.Capacity
		}
	}
}

// ShieldSystem recharges shields by drawing from the entity's own power
// store. No power, no shields.
type ShieldSystem struct{}

func NewShieldSystem() *ShieldSystem {
	return &ShieldSystem{}
}

func (s *ShieldSystem) Priority() int {
	return parameter.PriorityShields
}

func (s *ShieldSystem) Update(w *engine.World, dt float64) {
	for _, e := range w.Query(engine.TypeOf[component.Shields]()) {
		shields := engine.Get[component.Shields](w, e)
		power := engine.Get[component.Power](w, e)
		if power == nil {
			shields.HP = 0
			continue
		}
		if shields.Overloaded {
			if shields.OverloadTimer.Tick(dt) {
				shields.Overloaded = false
				shields.OverloadTimer.Reset()
			}
			continue
		}
		want := shields.RechargeRate * dt
		if room := shields.MaxHP - shields.HP; want > room {
			want = room
		}
		shields.HP += power.Consume(want)
	}
}

// KillOnTimerSystem destroys entities whose lifetime has run out.
type KillOnTimerSystem struct{}

func NewKillOnTimerSystem() *KillOnTimerSystem {
	return &KillOnTimerSystem{}
}

func (s *KillOnTimerSystem) Priority() int {
	return parameter.PriorityKillOnTimer
}

func (s *KillOnTimerSystem) Update(w *engine.World, dt float64) {
	for _, e := range w.Query(engine.TypeOf[component.KillOnTimer]()) {
		timer := engine.Get[component.KillOnTimer](w, e)
		if timer.Lifetime.Tick(dt) {
			w.Kill(e)
		}
	}
}

// AnimationSystem advances frame animations, looping them or killing the
// entity at the end.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Priority() int {
	return parameter.PriorityAnimation
}

func (s *AnimationSystem) Update(w *engine.World, dt float64) {
	for _, e := range w.Query(engine.TypeOf[component.AnimationFrames]()) {
		anim := engine.Get[component.AnimationFrames](w, e)
		if anim.Timer.Tick(dt) {
			if anim.KillOnFinish {
				w.Kill(e)
			} else {
				anim.Timer.Reset()
			}
		}
	}
}

// TextSystem drives text blinking.
type TextSystem struct{}

func NewTextSystem() *TextSystem {
	return &TextSystem{}
}

func (s *TextSystem) Priority() int {
	return parameter.PriorityText
}

func (s *TextSystem) Update(w *engine.World, dt float64) {
	for _, e := range w.Query(engine.TypeOf[component.Text]()) {
		text := engine.Get[component.Text](w, e)
		if !text.Blink {
			continue
		}
		if text.BlinkTimer.Tick(dt) {
			text.BlinkTimer.Reset()
			text.Visible = !text.Visible
		}
	}
}
