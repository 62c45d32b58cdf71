package physics

import "github.com/automoto/stompgrid/shared/gamemath"

// Outcome classifies a player/enemy contact.
type Outcome int

const (
	None Outcome = iota
	Stomp
	SideHit
)

func (o Outcome) String() string {
	switch o {
	case Stomp:
		return "stomp"
	case SideHit:
		return "side-hit"
	default:
		return "none"
	}
}

// Overlaps reports whether two bodies strictly overlap.
func Overlaps(a, b Body) bool {
	return gamemath.Overlap(a.Left(), a.Right(), b.Left(), b.Right()) &&
		gamemath.Overlap(a.Bottom(), a.Top(), b.Bottom(), b.Top())
}

// Classify decides a player/enemy contact. The player stomps when its bottom
// edge is above a line a quarter of the enemy's height below the enemy's
// center, so the upper 75% of the enemy counts as its top. Any other overlap
// is a side hit.
func Classify(player, enemy Body) Outcome {
	if !Overlaps(player, enemy) {
		return None
	}
	if player.Bottom() > enemy.Y-enemy.Height/4 {
		return Stomp
	}
	return SideHit
}
