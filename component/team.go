// Package component holds the gameplay components: plain state structs built
// from archetype config and mutated by the systems in package system. A
// component never updates itself; anything per-tick lives in a system.
package component

import (
	"github.com/lmcneill42/space-game/config"
	"github.com/lmcneill42/space-game/core"
	"github.com/lmcneill42/space-game/engine"
)

// Team marks the entity as belonging to a side. Entities without a team, or
// with an empty team name, are neutral: nothing tracks them and they track
// nothing.
type Team struct {
	Name string
}

// NewTeam builds a Team from config. The name is usually left empty in the
// archetype and supplied at spawn time.
func NewTeam(e core.Entity, w *engine.World, cfg *config.Config) (engine.Component, error) {
	return &Team{Name: cfg.StringOr("team", "")}, nil
}

// Setup accepts the spawn-time "team" override, so bullets and fighters
// inherit the side of whatever spawned them.
func (t *Team) Setup(w *engine.World, ov engine.Overrides) {
	if name, ok := ov.String("team"); ok {
		t.Name = name
	}
}

// OnSameTeam reports whether both teams are set and equal.
func (t *Team) OnSameTeam(o *Team) bool {
	if t == nil || o == nil || t.Name == "" || o.Name == "" {
		return false
	}
	return t.Name == o.Name
}

// Hostile reports whether both teams are set and different.
func (t *Team) Hostile(o *Team) bool {
	if t == nil || o == nil || t.Name == "" || o.Name == "" {
		return false
	}
	return t.Name != o.Name
}
