package factory

import (
	"github.com/automoto/stompgrid/config"
	"github.com/automoto/stompgrid/physics"
)

// ResolveOptions converts the configured epsilon and tie-break.
func ResolveOptions(s config.Settings) physics.ResolveOptions {
	opts := physics.ResolveOptions{Epsilon: s.Physics.Epsilon, TieBreak: physics.TieBreakFirst}
	if s.Physics.TieBreak == config.TieBreakMaxPenetration {
		opts.TieBreak = physics.TieBreakMaxPenetration
	}
	return opts
}

func PlayerMover(s config.Settings) physics.Mover {
	return physics.Mover{
		Gravity:          s.Player.Gravity,
		TerminalVelocity: s.Physics.TerminalVelocity,
		JumpForce:        s.Player.JumpForce,
		BounceFactor:     s.Player.BounceFactor,
		DeathY:           s.Player.DeathY,
		ClampToGrid:      s.Player.ClampToLevel,
		Resolve:          ResolveOptions(s),
	}
}

// EnemyMover has no jump; enemies only patrol and fall.
func EnemyMover(s config.Settings) physics.Mover {
	return physics.Mover{
		Gravity:          s.Enemy.Gravity,
		TerminalVelocity: s.Physics.TerminalVelocity,
		DeathY:           s.Enemy.DeathY,
		Resolve:          ResolveOptions(s),
	}
}
