package engine

import (
	"math/rand"

	"go.uber.org/zap"
)

// Resources holds the shared singletons systems need beyond the entity
// tables: the logger, the random source, and the handful of game-global
// handles and flags. One instance lives on the World.
type Resources struct {
	Log  *zap.Logger
	Rand *rand.Rand

	// Player is the player's entity, set by the game wiring once the player
	// has been spawned. Resolves to nothing after the player dies.
	Player Ref

	// Camera is the camera entity, for systems that apply shake.
	Camera Ref

	// GameOver is raised by the end-of-program kill hook. The driver polls
	// it and stops calling Tick.
	GameOver bool
}

func (r *Resources) init(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	r.Log = log
	r.Rand = rand.New(rand.NewSource(1))
}

// Seed replaces the random source. The simulation is deterministic for a
// fixed seed and tick sequence on a single machine.
func (r *Resources) Seed(seed int64) {
	r.Rand = rand.New(rand.NewSource(seed))
}
