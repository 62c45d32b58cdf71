package components

import (
	"github.com/automoto/stompgrid/physics"
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	SpawnX, SpawnY float64
	Speed          float64 // horizontal units per second
	Mover          physics.Mover
	FallPolicy     string // config.FallRespawn or config.FallGameOver
}

var Player = donburi.NewComponentType[PlayerData]()
