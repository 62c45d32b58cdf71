package factory

import (
	"github.com/automoto/stompgrid/archetypes"
	"github.com/automoto/stompgrid/components"
	"github.com/automoto/stompgrid/config"
	"github.com/automoto/stompgrid/physics"
	"github.com/yohamta/donburi"
)

func CreateEnemy(w donburi.World, s config.Settings, id uint32, x, y float64) *donburi.Entry {
	enemy := archetypes.Enemy.Spawn(w)

	components.Body.SetValue(enemy, physics.NewBody(x, y, s.Enemy.Width, s.Enemy.Height))
	components.Enemy.SetValue(enemy, components.EnemyData{
		ID:     id,
		Patrol: physics.NewPatroller(s.Enemy.Speed), // start facing left
		Active: true,
	})

	return enemy
}
