package systems

import (
	"github.com/automoto/stompgrid/components"
	"github.com/automoto/stompgrid/shared/messages"
	"github.com/yohamta/donburi"
)

// UpdateDespawn removes enemies deactivated this tick. It also runs on the
// tick the game ends so stomps that preceded a side hit are still cleaned up.
func UpdateDespawn(w donburi.World) {
	state := gameState(w)
	if state == nil {
		return
	}

	live := state.Enemies[:0]
	for _, entity := range state.Enemies {
		if !w.Valid(entity) {
			continue
		}
		entry := w.Entry(entity)
		enemy := components.Enemy.Get(entry)
		if enemy.Active {
			live = append(live, entity)
			continue
		}
		state.Emit(messages.Event{Kind: messages.EnemyDespawned, EnemyID: enemy.ID})
		w.Remove(entity)
	}
	state.Enemies = live
}
