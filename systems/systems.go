package systems

import (
	"github.com/automoto/stompgrid/components"
	"github.com/yohamta/donburi"
)

// System advances one concern of the world by one tick.
type System func(w donburi.World)

// Default returns the per-tick order: player, enemies, encounters, despawn.
func Default() []System {
	return []System{
		UpdatePlayer,
		UpdateEnemies,
		UpdateEncounters,
		UpdateDespawn,
	}
}

func gameState(w donburi.World) *components.GameStateData {
	entry, ok := components.GameState.First(w)
	if !ok {
		return nil
	}
	return components.GameState.Get(entry)
}

func levelData(w donburi.World) *components.LevelData {
	entry, ok := components.Level.First(w)
	if !ok {
		return nil
	}
	return components.Level.Get(entry)
}

// running returns the state and level when the world should advance.
func running(w donburi.World) (*components.GameStateData, *components.LevelData, bool) {
	state := gameState(w)
	level := levelData(w)
	if state == nil || level == nil || state.GameOver || state.Err != nil {
		return state, level, false
	}
	return state, level, true
}
