package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"

	"gopkg.in/yaml.v3"
)

// Fall-out policies for the player.
const (
	FallRespawn  = "respawn"
	FallGameOver = "gameover"
)

// Tie-break names accepted in PhysicsConfig.TieBreak.
const (
	TieBreakFirst          = "first"
	TieBreakMaxPenetration = "max-penetration"
)

// ErrInvalidSettings is wrapped by every Validate failure.
var ErrInvalidSettings = errors.New("invalid settings")

// PhysicsConfig contains values shared by every body
type PhysicsConfig struct {
	TerminalVelocity float64 `yaml:"terminal_velocity"` // negative floor on vertical speed
	Epsilon          float64 `yaml:"epsilon"`           // gap left between a resolved body and the face it hit
	MaxDelta         float64 `yaml:"max_delta"`         // upper clamp on a tick's dt, seconds
	TieBreak         string  `yaml:"tie_break"`
}

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	// Movement
	Speed        float64 `yaml:"speed"`
	JumpForce    float64 `yaml:"jump_force"`
	BounceFactor float64 `yaml:"bounce_factor"` // fraction of JumpForce applied after a stomp

	// Physics
	Gravity float64 `yaml:"gravity"`

	// Dimensions
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Spawn and fall-out
	SpawnX       float64 `yaml:"spawn_x"` // used when the level has no player marker
	SpawnY       float64 `yaml:"spawn_y"`
	DeathY       float64 `yaml:"death_y"`
	FallPolicy   string  `yaml:"fall_policy"`
	ClampToLevel bool    `yaml:"clamp_to_level"`
}

// EnemyConfig contains enemy configuration
type EnemyConfig struct {
	Speed      float64 `yaml:"speed"`
	Gravity    float64 `yaml:"gravity"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	DeathY     float64 `yaml:"death_y"`
	StompScore int     `yaml:"stomp_score"`
}

// LevelConfig describes how text maps are placed in world space
type LevelConfig struct {
	TileSize float64 `yaml:"tile_size"`
	OriginX  float64 `yaml:"origin_x"`
	OriginY  float64 `yaml:"origin_y"`
	// Legend overrides the default glyphs, e.g. {"#": "solid"}.
	Legend map[string]string `yaml:"legend"`
}

// LogConfig controls the process logger
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"` // empty logs to stderr
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Settings is the complete tunable state of a session.
type Settings struct {
	Physics PhysicsConfig `yaml:"physics"`
	Player  PlayerConfig  `yaml:"player"`
	Enemy   EnemyConfig   `yaml:"enemy"`
	Level   LevelConfig   `yaml:"level"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns the stock tuning.
func Default() Settings {
	return Settings{
		Physics: PhysicsConfig{
			TerminalVelocity: -20,
			Epsilon:          1e-3,
			MaxDelta:         0.1,
			TieBreak:         TieBreakFirst,
		},
		Player: PlayerConfig{
			Speed:        5,
			JumpForce:    10,
			BounceFactor: 0.8,
			Gravity:      -30,
			Width:        1,
			Height:       1,
			SpawnX:       -2,
			SpawnY:       4,
			DeathY:       -10,
			FallPolicy:   FallRespawn,
		},
		Enemy: EnemyConfig{
			Speed:      2,
			Gravity:    -40,
			Width:      1,
			Height:     1,
			DeathY:     -15,
			StompScore: 100,
		},
		Level: LevelConfig{
			TileSize: 1,
			OriginX:  -5,
			OriginY:  8,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Parse overlays YAML onto the defaults. Keys missing from data keep their
// default value.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Load reads and parses a settings file from fsys.
func Load(fsys fs.FS, path string) (Settings, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate rejects tunings the physics cannot run with.
func (s Settings) Validate() error {
	switch {
	case !positive(s.Level.TileSize):
		return invalid("level.tile_size must be positive")
	case !positive(s.Player.Width) || !positive(s.Player.Height):
		return invalid("player size must be positive")
	case !positive(s.Enemy.Width) || !positive(s.Enemy.Height):
		return invalid("enemy size must be positive")
	case !positive(s.Physics.MaxDelta):
		return invalid("physics.max_delta must be positive")
	case !positive(s.Physics.Epsilon):
		return invalid("physics.epsilon must be positive")
	case s.Physics.TerminalVelocity >= 0:
		return invalid("physics.terminal_velocity must be negative")
	case s.Player.Gravity > 0 || s.Enemy.Gravity > 0:
		return invalid("gravity must not point up")
	}

	switch s.Player.FallPolicy {
	case FallRespawn, FallGameOver:
	default:
		return invalid(fmt.Sprintf("unknown player.fall_policy %q", s.Player.FallPolicy))
	}
	switch s.Physics.TieBreak {
	case TieBreakFirst, TieBreakMaxPenetration:
	default:
		return invalid(fmt.Sprintf("unknown physics.tie_break %q", s.Physics.TieBreak))
	}
	return nil
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 1) }

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidSettings, msg)
}
