package components

import (
	"github.com/automoto/stompgrid/physics"
	"github.com/yohamta/donburi"
)

type EnemyData struct {
	ID     uint32 // stable for the life of the enemy, never reused within a session
	Patrol physics.Patroller
	// Active is cleared when the enemy is stomped or falls out; inactive
	// enemies are removed at the end of the tick.
	Active bool
}

var Enemy = donburi.NewComponentType[EnemyData]()
