package systems

import (
	"fmt"

	"github.com/automoto/stompgrid/components"
	"github.com/automoto/stompgrid/config"
	"github.com/automoto/stompgrid/shared/messages"
	"github.com/automoto/stompgrid/tags"
	"github.com/yohamta/donburi"
)

// UpdatePlayer steps the player from the tick's input and applies the
// fall-out policy.
func UpdatePlayer(w donburi.World) {
	state, level, ok := running(w)
	if !ok {
		return
	}
	entry, ok := tags.Player.First(w)
	if !ok {
		return
	}

	body := components.Body.Get(entry)
	player := components.Player.Get(entry)

	res, err := player.Mover.StepPlayer(body, state.Input, player.Speed, level.Grid, state.DT)
	if err != nil {
		state.Err = fmt.Errorf("player: %w", err)
		return
	}

	if res.Landed {
		state.Emit(messages.Event{Kind: messages.PlayerLanded, X: body.X, Y: body.Y, Speed: res.LandingSpeed})
	}
	if res.Jumped {
		state.Emit(messages.Event{Kind: messages.PlayerJumped, X: body.X, Y: body.Y})
	}
	if !res.FellOut {
		return
	}

	state.Emit(messages.Event{Kind: messages.PlayerFell, X: body.X, Y: body.Y})
	if player.FallPolicy == config.FallGameOver {
		state.GameOver = true
		state.Emit(messages.Event{Kind: messages.GameOver, Score: state.Score})
		return
	}
	body.Reset(player.SpawnX, player.SpawnY)
	state.Emit(messages.Event{Kind: messages.PlayerRespawned, X: body.X, Y: body.Y})
}
