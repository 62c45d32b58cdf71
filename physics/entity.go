package physics

import (
	"fmt"

	"github.com/automoto/stompgrid/shared/gamemath"
)

// Input is the level-triggered control state sampled once per tick.
type Input struct {
	Left, Right, Jump bool
}

// MoveIntent is what a body wants to do this tick.
type MoveIntent struct {
	DX            float64 // horizontal displacement for this tick
	JumpRequested bool
}

// PlayerDelta turns directional input into a horizontal displacement.
// Left and right are summed, so pressing both cancels.
func PlayerDelta(in Input, speed, dt float64) float64 {
	return gamemath.AxisDirection(in.Left, in.Right) * speed * dt
}

// StepResult reports what happened to a body during one tick.
type StepResult struct {
	Horizontal AxisResult
	Vertical   AxisResult

	Jumped bool
	// Landed is set on the tick a body goes from airborne to grounded;
	// LandingSpeed is its vertical velocity at impact.
	Landed       bool
	LandingSpeed float64
	// FellOut is set when the body ends the tick below DeathY.
	FellOut bool
}

// Mover holds the tuning shared by every body of one kind.
type Mover struct {
	Gravity          float64 // negative
	TerminalVelocity float64 // negative floor on VelocityY
	JumpForce        float64
	BounceFactor     float64
	DeathY           float64
	// ClampToGrid keeps the body horizontally inside the grid extents.
	ClampToGrid bool
	Resolve     ResolveOptions
}

// Step advances body by one tick: integrate gravity, resolve horizontal, then
// vertical, then honor a jump, then check the fall-out threshold. Each body
// resolves against the static grid only.
func (m Mover) Step(body *Body, intent MoveIntent, grid *Grid, dt float64) (StepResult, error) {
	var res StepResult
	wasGrounded := body.Grounded

	body.VelocityY = gamemath.IntegrateGravity(body.VelocityY, m.Gravity, m.TerminalVelocity, dt)

	h, err := ResolveAxisMove(body, Horizontal, intent.DX, grid, m.Resolve)
	if err != nil {
		return res, fmt.Errorf("step: %w", err)
	}
	if m.ClampToGrid && grid.Len() > 0 {
		left, right, _, _ := grid.Bounds()
		body.X = gamemath.ClampFloat(body.X, left+body.Width/2, right-body.Width/2)
		h.Position = body.X
	}
	res.Horizontal = h

	impact := body.VelocityY
	v, err := ResolveAxisMove(body, Vertical, m.verticalDelta(body, dt), grid, m.Resolve)
	if err != nil {
		return res, fmt.Errorf("step: %w", err)
	}
	res.Vertical = v
	if v.Collided && body.Grounded && !wasGrounded {
		res.Landed = true
		res.LandingSpeed = impact
	}

	if intent.JumpRequested {
		res.Jumped = body.Jump(m.JumpForce)
	}

	res.FellOut = body.Y < m.DeathY
	return res, nil
}

// verticalDelta is the vertical displacement for this tick. A grounded body
// rests Epsilon above its floor, so at small dt the fall step can be shorter
// than that gap. Such a body is pushed down by at least twice Epsilon to keep
// the floor in contact.
func (m Mover) verticalDelta(body *Body, dt float64) float64 {
	delta := body.VelocityY * dt
	if !body.Grounded || delta > 0 {
		return delta
	}
	return min(delta, -2*m.Resolve.Epsilon)
}

// StepPlayer steps a body driven by directional input.
func (m Mover) StepPlayer(body *Body, in Input, speed float64, grid *Grid, dt float64) (StepResult, error) {
	return m.Step(body, MoveIntent{DX: PlayerDelta(in, speed, dt), JumpRequested: in.Jump}, grid, dt)
}

// Bounce pops a body upward after a stomp, without needing a jump input.
func (m Mover) Bounce(body *Body) {
	body.Bounce(m.JumpForce, m.BounceFactor)
}

// Patroller walks at a constant speed and turns around on any wall contact.
type Patroller struct {
	Speed  float64
	Facing float64 // -1 left, +1 right
}

// NewPatroller returns a patroller facing left.
func NewPatroller(speed float64) Patroller {
	return Patroller{Speed: speed, Facing: -1}
}

// Step moves the body one tick along its facing. A horizontal collision flips
// the facing for the next tick.
func (p *Patroller) Step(m Mover, body *Body, grid *Grid, dt float64) (StepResult, error) {
	res, err := m.Step(body, MoveIntent{DX: p.Speed * p.Facing * dt}, grid, dt)
	if err != nil {
		return res, err
	}
	if res.Horizontal.Collided {
		p.Facing = -p.Facing
	}
	return res, nil
}
