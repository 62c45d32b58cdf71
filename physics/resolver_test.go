package physics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMover(gravity float64) Mover {
	return Mover{
		Gravity:          gravity,
		TerminalVelocity: -20,
		JumpForce:        10,
		BounceFactor:     0.8,
		DeathY:           -100,
		Resolve:          DefaultResolveOptions(),
	}
}

func TestFallingBodyComesToRest(t *testing.T) {
	grid := mustBuild(t, []string{"GG"}, WithOrigin(0, 0))
	mover := testMover(-40)
	body := NewBody(0.5, 5, 1, 1)

	ticks := 0
	for ; ticks < 200 && !body.Grounded; ticks++ {
		_, err := mover.Step(&body, MoveIntent{}, grid, 0.016)
		require.NoError(t, err)
	}
	require.True(t, body.Grounded, "not grounded after %d ticks", ticks)

	assert.InDelta(t, 0.5+1e-3, body.Bottom(), 1e-12)
	assert.InDelta(t, 1.001, body.Y, 1e-12)
	assert.Zero(t, body.VelocityY)

	rest := body.Y
	for i := 0; i < 100; i++ {
		res, err := mover.Step(&body, MoveIntent{}, grid, 0.016)
		require.NoError(t, err)
		require.Equal(t, rest, body.Y, "tick %d", i)
		require.True(t, body.Grounded)
		require.False(t, res.Landed)
	}
}

func TestRestingBodyStaysGroundedAtHighTickRate(t *testing.T) {
	grid := mustBuild(t, []string{"GGGGG"}, WithOrigin(0, 0))
	mover := testMover(-30)
	body := NewBody(2, 1.001, 1, 1)
	body.Grounded = true
	const dt = 1.0 / 240

	// The per-tick fall step is smaller than the rest gap.
	require.Less(t, 30*dt*dt, mover.Resolve.Epsilon)

	_, err := mover.Step(&body, MoveIntent{}, grid, dt)
	require.NoError(t, err)
	rest := body.Y
	require.InDelta(t, 1.001, rest, 1e-12)

	for i := 0; i < 1000; i++ {
		res, err := mover.Step(&body, MoveIntent{}, grid, dt)
		require.NoError(t, err)
		require.Equal(t, rest, body.Y, "tick %d", i)
		require.True(t, body.Grounded, "tick %d", i)
		require.False(t, res.Landed, "tick %d", i)
		require.True(t, res.Vertical.Collided, "tick %d", i)
	}

	res, err := mover.Step(&body, MoveIntent{JumpRequested: true}, grid, dt)
	require.NoError(t, err)
	assert.True(t, res.Jumped)
	assert.Equal(t, 10.0, body.VelocityY)
}

func TestGroundedBodyStillFallsOffLedgeAtHighTickRate(t *testing.T) {
	grid := mustBuild(t, []string{"G"}, WithOrigin(0, 0))
	mover := testMover(-30)
	body := NewBody(3, 1.001, 1, 1) // nothing underneath
	body.Grounded = true

	res, err := mover.Step(&body, MoveIntent{}, grid, 1.0/240)
	require.NoError(t, err)
	assert.False(t, res.Vertical.Collided)
	assert.False(t, body.Grounded)
	assert.Less(t, body.Y, 1.001)
}

func TestNoTunnelingAtNormalTimestep(t *testing.T) {
	grid := mustBuild(t, []string{"G"}, WithOrigin(0, 0))
	mover := testMover(-40)
	tile := grid.Tile(0)

	for _, dt := range []float64{0.016, 0.05, 0.1} {
		for _, startY := range []float64{3.7, 6.33, 10.05} {
			t.Run(fmt.Sprintf("dt=%v/y=%v", dt, startY), func(t *testing.T) {
				body := NewBody(0, startY, 1, 1)
				body.VelocityY = mover.TerminalVelocity

				for i := 0; i < 1000 && !body.Grounded; i++ {
					_, err := mover.Step(&body, MoveIntent{}, grid, dt)
					require.NoError(t, err)
				}
				require.True(t, body.Grounded)
				assert.InDelta(t, tile.CenterY+tile.Height/2+body.Height/2+1e-3, body.Y, 1e-9)
			})
		}
	}
}

func TestHorizontalSymmetry(t *testing.T) {
	grid := mustBuild(t, []string{"G.G"}, WithOrigin(0, 0))
	opts := DefaultResolveOptions()

	right := NewBody(1, 0, 0.5, 0.5)
	right.VelocityY, right.Grounded = 3, true
	res, err := ResolveAxisMove(&right, Horizontal, 1, grid, opts)
	require.NoError(t, err)
	require.True(t, res.Collided)
	assert.Equal(t, grid.Tile(1), res.Hit.Tile)
	assert.Equal(t, Horizontal, res.Hit.Axis)
	assert.InDelta(t, 2-0.5-0.25-1e-3, right.X, 1e-12)
	assert.Equal(t, right.X, res.Position)

	left := NewBody(1, 0, 0.5, 0.5)
	left.VelocityY, left.Grounded = 3, true
	res, err = ResolveAxisMove(&left, Horizontal, -1, grid, opts)
	require.NoError(t, err)
	require.True(t, res.Collided)
	assert.Equal(t, grid.Tile(0), res.Hit.Tile)
	assert.InDelta(t, 0+0.5+0.25+1e-3, left.X, 1e-12)

	assert.InDelta(t, right.X-1, 1-left.X, 1e-12)

	// Horizontal contact leaves vertical state alone.
	for _, b := range []Body{left, right} {
		assert.Equal(t, 3.0, b.VelocityY)
		assert.True(t, b.Grounded)
	}
}

func TestCeilingHit(t *testing.T) {
	grid := mustBuild(t, []string{"G"}, WithOrigin(0, 0))
	body := NewBody(0, -1.2, 1, 1)
	body.VelocityY = 8
	body.Grounded = true

	res, err := ResolveAxisMove(&body, Vertical, 0.5, grid, DefaultResolveOptions())
	require.NoError(t, err)
	require.True(t, res.Collided)
	assert.InDelta(t, -1.001, body.Y, 1e-12)
	assert.Zero(t, body.VelocityY)
	assert.True(t, body.Grounded, "rising contact does not change grounded")
}

func TestVerticalMoveWithoutContactClearsGrounded(t *testing.T) {
	grid := mustBuild(t, []string{"G"}, WithOrigin(0, 0))
	body := NewBody(5, 5, 1, 1)
	body.Grounded = true

	res, err := ResolveAxisMove(&body, Vertical, -0.1, grid, DefaultResolveOptions())
	require.NoError(t, err)
	assert.False(t, res.Collided)
	assert.Nil(t, res.Hit)
	assert.False(t, body.Grounded)
	assert.InDelta(t, 4.9, body.Y, 1e-12)
}

func TestZeroDeltaIsNoop(t *testing.T) {
	grid := mustBuild(t, []string{"G"}, WithOrigin(0, 0))
	body := NewBody(0, 0, 1, 1) // overlapping the tile already
	body.Grounded = true

	for _, axis := range []Axis{Horizontal, Vertical} {
		res, err := ResolveAxisMove(&body, axis, 0, grid, DefaultResolveOptions())
		require.NoError(t, err)
		assert.False(t, res.Collided)
		assert.True(t, body.Grounded)
		assert.Equal(t, NewBody(0, 0, 1, 1).X, body.X)
	}
}

func TestItemTilesDoNotBlock(t *testing.T) {
	grid := mustBuild(t, []string{"?"}, WithOrigin(0, 0))
	body := NewBody(0, 1.2, 1, 1)

	res, err := ResolveAxisMove(&body, Vertical, -0.5, grid, DefaultResolveOptions())
	require.NoError(t, err)
	assert.False(t, res.Collided)
	assert.InDelta(t, 0.7, body.Y, 1e-12)
}

func TestResolveDegenerateBody(t *testing.T) {
	grid := mustBuild(t, []string{"G"})
	body := NewBody(0, 0, 0, 1)

	_, err := ResolveAxisMove(&body, Horizontal, 1, grid, DefaultResolveOptions())
	assert.ErrorIs(t, err, ErrDegenerateBox)
	assert.Equal(t, 0.0, body.X, "failed resolve does not move the body")
}

func TestTieBreak(t *testing.T) {
	// Upper tile comes first in grid order but is penetrated less.
	grid := mustBuild(t, []string{"..G", ".G."}, WithOrigin(0, 0))

	tests := []struct {
		name     string
		tieBreak TieBreak
		wantX    float64
	}{
		{"first hit", TieBreakFirst, 1.5 - 0.5 - 1e-3},
		{"max penetration", TieBreakMaxPenetration, 0.5 - 0.5 - 1e-3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := NewBody(0.3, -0.4, 1, 1)
			opts := ResolveOptions{Epsilon: 1e-3, TieBreak: tt.tieBreak}

			res, err := ResolveAxisMove(&body, Horizontal, 1, grid, opts)
			require.NoError(t, err)
			require.True(t, res.Collided)
			assert.InDelta(t, tt.wantX, body.X, 1e-12)
		})
	}
}
