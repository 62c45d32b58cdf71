package messages

// EventKind identifies what happened during a tick
type EventKind int

const (
	EnemyStomped    EventKind = iota // player landed on an enemy
	PlayerHit                        // enemy touched the player from the side or below
	PlayerFell                       // player dropped below its death line
	PlayerRespawned                  // player was reset to its spawn point
	EnemyFell                        // enemy dropped below its death line
	EnemyDespawned                   // inactive enemy was removed from the world
	PlayerJumped
	PlayerLanded
	GameOver
)

var kindNames = [...]string{
	EnemyStomped:    "enemy-stomped",
	PlayerHit:       "player-hit",
	PlayerFell:      "player-fell",
	PlayerRespawned: "player-respawned",
	EnemyFell:       "enemy-fell",
	EnemyDespawned:  "enemy-despawned",
	PlayerJumped:    "player-jumped",
	PlayerLanded:    "player-landed",
	GameOver:        "game-over",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Event is emitted by the session for external consumers (renderers, audio,
// logs). Fields that do not apply to a kind are zero.
type Event struct {
	Kind    EventKind
	Tick    uint64
	EnemyID uint32  // enemy involved, 0 for player-only events
	X, Y    float64 // where it happened
	Score   int     // running score after a stomp, final score on game over
	Speed   float64 // vertical speed at impact for PlayerLanded
}
