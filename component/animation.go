package component

import (
	"github.com/lmcneill42/space-game/config"
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
)

// AnimationFrames is the playhead of a frame animation. The kernel only
// advances it and picks the frame index; what a frame looks like is the
// renderer's business. Explosions set KillOnFinish so they vanish with the
// last frame.
type AnimationFrames struct {
	Frames       int
	Timer        core.Timer
	KillOnFinish bool
}

func NewAnimationFrames(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	frames, err := cfg.Int("frames")
	if err != nil {
		return nil, err
	}
	duration, err := cfg.Float("duration")
	if err != nil {
		return nil, err
	}
	return &AnimationFrames{
		Frames:       frames,
		Timer:        core.NewTimer(duration),
		KillOnFinish: cfg.BoolOr("kill_on_finish", false),
	}, nil
}

// Frame returns the current frame index in [0, Frames).
func (a *AnimationFrames) Frame() int {
	return a.Timer.PickIndex(a.Frames)
}
