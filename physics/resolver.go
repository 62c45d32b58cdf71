package physics

import (
	"fmt"

	"github.com/automoto/stompgrid/shared/gamemath"
)

// DefaultEpsilon keeps a resolved body just off the face it hit, so the next
// query does not re-trigger on a shared boundary.
const DefaultEpsilon = 1e-3

// Axis selects which coordinate a move applies to.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// TieBreak chooses which tile clamps a move when several overlap at once.
type TieBreak int

const (
	// TieBreakFirst uses the first blocking tile in grid order. With several
	// simultaneous overlaps this can under-resolve corners; that is accepted.
	TieBreakFirst TieBreak = iota
	// TieBreakMaxPenetration uses the tile penetrated deepest along the axis,
	// falling back to grid order on ties.
	TieBreakMaxPenetration
)

// ResolveOptions tunes ResolveAxisMove.
type ResolveOptions struct {
	Epsilon  float64
	TieBreak TieBreak
}

// DefaultResolveOptions returns the epsilon offset and first-hit tie-break.
func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{Epsilon: DefaultEpsilon, TieBreak: TieBreakFirst}
}

// CollisionHit is the tile a move was clamped against.
type CollisionHit struct {
	Tile Tile
	Axis Axis
}

// AxisResult is the outcome of resolving one axis of one body.
type AxisResult struct {
	Position float64
	Collided bool
	Hit      *CollisionHit
}

// ResolveAxisMove moves body by delta along axis and clamps it against the
// grid. On the vertical axis it also settles velocity and the grounded flag:
// landing zeroes VelocityY and grounds the body, a ceiling hit zeroes
// VelocityY, and a vertical move without contact leaves the body airborne.
// A zero delta is a no-op.
func ResolveAxisMove(body *Body, axis Axis, delta float64, grid *Grid, opts ResolveOptions) (AxisResult, error) {
	current := body.coord(axis)
	if delta == 0 {
		return AxisResult{Position: current}, nil
	}

	probe := *body
	probe.setCoord(axis, current+delta)

	hits, err := grid.Query(probe.X, probe.Y, probe.Width, probe.Height)
	if err != nil {
		return AxisResult{Position: current}, fmt.Errorf("resolve %s move: %w", axis, err)
	}

	tile, ok := pickBlocking(hits, probe, axis, opts.TieBreak)
	if !ok {
		body.setCoord(axis, current+delta)
		if axis == Vertical {
			body.Grounded = false
		}
		return AxisResult{Position: current + delta}, nil
	}

	var pos float64
	switch {
	case axis == Horizontal && delta > 0:
		pos = tile.CenterX - tile.Width/2 - body.Width/2 - opts.Epsilon
	case axis == Horizontal:
		pos = tile.CenterX + tile.Width/2 + body.Width/2 + opts.Epsilon
	case delta < 0:
		// Falling: rest on top.
		pos = tile.CenterY + tile.Height/2 + body.Height/2 + opts.Epsilon
		body.VelocityY = 0
		body.Grounded = true
	default:
		// Rising: snap beneath the ceiling.
		pos = tile.CenterY - tile.Height/2 - body.Height/2 - opts.Epsilon
		body.VelocityY = 0
	}
	body.setCoord(axis, pos)

	return AxisResult{
		Position: pos,
		Collided: true,
		Hit:      &CollisionHit{Tile: tile, Axis: axis},
	}, nil
}

func pickBlocking(hits []Tile, probe Body, axis Axis, tieBreak TieBreak) (Tile, bool) {
	var (
		best    Tile
		bestPen float64
		found   bool
	)
	for _, t := range hits {
		if !t.Blocks() {
			continue
		}
		if tieBreak == TieBreakFirst {
			return t, true
		}
		var pen float64
		if axis == Horizontal {
			pen = gamemath.Penetration(probe.Left(), probe.Right(), t.Left(), t.Right())
		} else {
			pen = gamemath.Penetration(probe.Bottom(), probe.Top(), t.Bottom(), t.Top())
		}
		if !found || pen > bestPen {
			best, bestPen, found = t, pen, true
		}
	}
	return best, found
}
