package factory

import (
	"testing"

	"github.com/automoto/stompgrid/components"
	"github.com/automoto/stompgrid/config"
	"github.com/automoto/stompgrid/physics"
	"github.com/automoto/stompgrid/shared/leveldata"
	"github.com/automoto/stompgrid/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func TestCreatePlayer(t *testing.T) {
	w := donburi.NewWorld()
	s := config.Default()

	e := CreatePlayer(w, s, 1, 2)
	require.True(t, e.HasComponent(tags.Player))

	body := components.Body.Get(e)
	assert.Equal(t, physics.NewBody(1, 2, 1, 1), *body)
	pl := components.Player.Get(e)
	assert.Equal(t, 5.0, pl.Speed)
	assert.Equal(t, 10.0, pl.Mover.JumpForce)
	assert.Equal(t, -30.0, pl.Mover.Gravity)
	assert.Equal(t, config.FallRespawn, pl.FallPolicy)
}

func TestCreateEnemy(t *testing.T) {
	w := donburi.NewWorld()
	e := CreateEnemy(w, config.Default(), 7, 3, 4)
	require.True(t, e.HasComponent(tags.Enemy))

	enemy := components.Enemy.Get(e)
	assert.Equal(t, uint32(7), enemy.ID)
	assert.True(t, enemy.Active)
	assert.Equal(t, -1.0, enemy.Patrol.Facing)
	assert.Equal(t, 2.0, enemy.Patrol.Speed)
}

func TestCreateLevel(t *testing.T) {
	w := donburi.NewWorld()
	data, err := leveldata.ParseRows([]string{"GG"}, leveldata.DefaultParseOptions())
	require.NoError(t, err)

	e := CreateLevel(w, config.Default(), data)
	level := components.Level.Get(e)
	assert.Equal(t, 2, level.Grid.Len())
	assert.Equal(t, 100, level.StompScore)
	assert.Equal(t, -15.0, level.EnemyMover.DeathY)
	assert.Zero(t, level.EnemyMover.JumpForce)
}

func TestResolveOptions(t *testing.T) {
	s := config.Default()
	assert.Equal(t, physics.DefaultResolveOptions(), ResolveOptions(s))

	s.Physics.TieBreak = config.TieBreakMaxPenetration
	assert.Equal(t, physics.TieBreakMaxPenetration, ResolveOptions(s).TieBreak)
}
