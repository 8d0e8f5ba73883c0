package system

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lmcneill42/space-game/engine"
	"github.com/lmcneill42/space-game/parameter"
	"github.com/lmcneill42/space-game/physics"
	"github.com/lmcneill42/space-game/vmath"
)

// WaveSpawnerSystem runs the campaign: it announces each wave, spawns
// enemies in a ring around the player once the announcement has expired, and
// ends the game with a victory or game-over message. Each wave is one enemy
// larger than the last.
type WaveSpawnerSystem struct {
	EnemyConfigs  []string
	MessageConfig string
	EndgameConfig string
	FinalWave     int
	SpawnDistance float64

	wave    int
	spawned []engine.Ref
	message engine.Ref
	done    bool
}

func NewWaveSpawnerSystem(enemyConfigs []string, messageConfig, endgameConfig string) *WaveSpawnerSystem {
	return &WaveSpawnerSystem{
		EnemyConfigs:  enemyConfigs,
		MessageConfig: messageConfig,
		EndgameConfig: endgameConfig,
		FinalWave:     10,
		SpawnDistance: 500,
		wave:          1,
	}
}

func (s *WaveSpawnerSystem) Priority() int {
	return parameter.PriorityWaveSpawner
}

// Wave returns the current wave number.
func (s *WaveSpawnerSystem) Wave() int {
	return s.wave
}

func (s *WaveSpawnerSystem) Update(w *engine.World, dt float64) {
	if s.done {
		return
	}

	playerDead := w.Resources.Player.Entity(w).IsNil()
	if playerDead || s.beatFinalWave() {
		s.done = true
		text := "GAME OVER"
		if s.beatFinalWave() {
			text = "VICTORY"
		}
		s.announce(w, s.EndgameConfig, text)
		return
	}

	if s.waveIsDead(w) && s.message.Target().IsNil() {
		s.announce(w, s.MessageConfig, fmt.Sprintf("WAVE %d PREPARING", s.wave))
	}
	if s.preparedToSpawn(w) {
		s.spawnWave(w)
	}
}

func (s *WaveSpawnerSystem) beatFinalWave() bool {
	return s.wave > s.FinalWave
}

// waveIsDead reports whether every enemy of the last wave is gone, dropping
// dangling refs as it goes.
func (s *WaveSpawnerSystem) waveIsDead(w *engine.World) bool {
	live := s.spawned[:0]
	for _, ref := range s.spawned {
		if !ref.Entity(w).IsNil() {
			live = append(live, ref)
		}
	}
	s.spawned = live
	return len(s.spawned) == 0
}

// preparedToSpawn reports whether the announcement has expired with the wave
// still dead.
func (s *WaveSpawnerSystem) preparedToSpawn(w *engine.World) bool {
	if s.message.Target().IsNil() || !s.waveIsDead(w) {
		return false
	}
	if s.message.Entity(w).IsNil() {
		s.message.Clear()
		return true
	}
	return false
}

func (s *WaveSpawnerSystem) announce(w *engine.World, name, text string) {
	e, err := w.CreateEntity(name, engine.Overrides{"text": text})
	if err != nil {
		w.Resources.Log.Error("spawning message",
			zap.String("config", name), zap.Error(err))
		return
	}
	s.message.Set(e)
}

func (s *WaveSpawnerSystem) spawnWave(w *engine.World) {
	player := engine.Deref[physics.Body](w, w.Resources.Player)
	if player == nil {
		return
	}
	rng := w.Resources.Rand
	for i := 0; i < s.wave; i++ {
		name := s.EnemyConfigs[rng.Intn(len(s.EnemyConfigs))]
		offset := vmath.V(0, -s.SpawnDistance).RotatedDegrees(rng.Float64() * 360)
		e, err := w.CreateEntity(name, engine.Overrides{
			"position": player.Position.Add(offset),
			"team":     "enemy",
		})
		if err != nil {
			w.Resources.Log.Error("spawning enemy",
				zap.String("config", name), zap.Error(err))
			continue
		}
		s.spawned = append(s.spawned, engine.NewRef(e))
	}
	s.wave++
}
