package systems

import (
	"fmt"

	"github.com/automoto/stompgrid/components"
	"github.com/automoto/stompgrid/shared/messages"
	"github.com/yohamta/donburi"
)

// UpdateEnemies patrols every active enemy against the grid. Enemies do not
// collide with each other.
func UpdateEnemies(w donburi.World) {
	state, level, ok := running(w)
	if !ok {
		return
	}

	for _, entity := range state.Enemies {
		if !w.Valid(entity) {
			continue
		}
		entry := w.Entry(entity)
		enemy := components.Enemy.Get(entry)
		if !enemy.Active {
			continue
		}
		body := components.Body.Get(entry)

		res, err := enemy.Patrol.Step(level.EnemyMover, body, level.Grid, state.DT)
		if err != nil {
			state.Err = fmt.Errorf("enemy %d: %w", enemy.ID, err)
			return
		}
		if res.FellOut {
			enemy.Active = false
			state.Emit(messages.Event{Kind: messages.EnemyFell, EnemyID: enemy.ID, X: body.X, Y: body.Y})
		}
	}
}
