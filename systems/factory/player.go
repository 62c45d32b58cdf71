package factory

import (
	"github.com/automoto/stompgrid/archetypes"
	"github.com/automoto/stompgrid/components"
	"github.com/automoto/stompgrid/config"
	"github.com/automoto/stompgrid/physics"
	"github.com/yohamta/donburi"
)

func CreatePlayer(w donburi.World, s config.Settings, x, y float64) *donburi.Entry {
	player := archetypes.Player.Spawn(w)

	components.Body.SetValue(player, physics.NewBody(x, y, s.Player.Width, s.Player.Height))
	components.Player.SetValue(player, components.PlayerData{
		SpawnX:     x,
		SpawnY:     y,
		Speed:      s.Player.Speed,
		Mover:      PlayerMover(s),
		FallPolicy: s.Player.FallPolicy,
	})

	return player
}
