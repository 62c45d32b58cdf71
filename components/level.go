package components

import (
	"github.com/automoto/stompgrid/physics"
	"github.com/automoto/stompgrid/shared/leveldata"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	Grid       *physics.Grid
	Data       *leveldata.CollisionData
	EnemyMover physics.Mover
	StompScore int
}

var Level = donburi.NewComponentType[LevelData]()
