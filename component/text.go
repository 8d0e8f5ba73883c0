package component

import (
	"github.com/lmcneill42/space-game/config"
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
)

// Text is a piece of on-screen text: wave announcements, the game-over
// banner. Renderers read Value and Visible; the text system drives the
// blinking.
type Text struct {
	Value      string
	Blink      bool
	BlinkTimer core.Timer
	Visible    bool
}

func NewText(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	return &Text{
		Value:      cfg.StringOr("text", ""),
		Blink:      cfg.BoolOr("blink", false),
		BlinkTimer: core.NewTimer(cfg.FloatOr("blink_period", 1)),
		Visible:    true,
	}, nil
}

// Setup accepts the spawn-time "text" override, which is how the wave
// spawner parameterises its messages.
func (t *Text) Setup(w *engine.World, ov engine.Overrides) {
	if s, ok := ov.String("text"); ok {
		t.Value = s
	}
}
