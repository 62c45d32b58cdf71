package systems

import (
	"github.com/automoto/stompgrid/components"
	"github.com/automoto/stompgrid/physics"
	"github.com/automoto/stompgrid/shared/messages"
	"github.com/automoto/stompgrid/tags"
	"github.com/yohamta/donburi"
)

// UpdateEncounters classifies the moved player against each moved, active
// enemy. A stomp scores, deactivates the enemy and bounces the player; a side
// hit ends the game and stops processing for the tick.
func UpdateEncounters(w donburi.World) {
	state, level, ok := running(w)
	if !ok {
		return
	}
	playerEntry, ok := tags.Player.First(w)
	if !ok {
		return
	}
	pb := components.Body.Get(playerEntry)
	player := components.Player.Get(playerEntry)

	for _, entity := range state.Enemies {
		if !w.Valid(entity) {
			continue
		}
		entry := w.Entry(entity)
		enemy := components.Enemy.Get(entry)
		if !enemy.Active {
			continue
		}
		eb := components.Body.Get(entry)

		switch physics.Classify(*pb, *eb) {
		case physics.Stomp:
			state.Score += level.StompScore
			enemy.Active = false
			player.Mover.Bounce(pb)
			state.Emit(messages.Event{Kind: messages.EnemyStomped, EnemyID: enemy.ID, X: eb.X, Y: eb.Y, Score: state.Score})
		case physics.SideHit:
			state.GameOver = true
			state.Emit(messages.Event{Kind: messages.PlayerHit, EnemyID: enemy.ID, X: pb.X, Y: pb.Y})
			state.Emit(messages.Event{Kind: messages.GameOver, Score: state.Score})
			return
		}
	}
}
