package factory

import (
	"github.com/automoto/stompgrid/archetypes"
	"github.com/automoto/stompgrid/components"
	"github.com/automoto/stompgrid/config"
	"github.com/automoto/stompgrid/physics"
	"github.com/automoto/stompgrid/shared/leveldata"
	"github.com/yohamta/donburi"
)

func CreateLevel(w donburi.World, s config.Settings, data *leveldata.CollisionData) *donburi.Entry {
	level := archetypes.Level.Spawn(w)

	components.Level.SetValue(level, components.LevelData{
		Grid:       physics.NewGrid(data),
		Data:       data,
		EnemyMover: EnemyMover(s),
		StompScore: s.Enemy.StompScore,
	})

	return level
}

func CreateGameState(w donburi.World) *donburi.Entry {
	state := archetypes.GameState.Spawn(w)
	components.GameState.SetValue(state, components.GameStateData{})
	return state
}
