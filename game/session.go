// Package game runs a level: it owns the donburi world, steps the systems
// once per tick and exposes read-only snapshots for renderers.
package game

import (
	"errors"
	"fmt"

	"github.com/automoto/stompgrid/components"
	"github.com/automoto/stompgrid/config"
	"github.com/automoto/stompgrid/physics"
	"github.com/automoto/stompgrid/shared/gamemath"
	"github.com/automoto/stompgrid/shared/leveldata"
	"github.com/automoto/stompgrid/shared/messages"
	"github.com/automoto/stompgrid/systems"
	"github.com/automoto/stompgrid/systems/factory"
	"github.com/automoto/stompgrid/tags"
	"github.com/kamstrup/intmap"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// ErrNoLevel is returned when a session is created or reloaded without data.
var ErrNoLevel = errors.New("no level data")

// TickResult is what one call to Tick produced.
type TickResult struct {
	Tick     uint64
	Events   []messages.Event
	Score    int
	GameOver bool
}

// EnemyView is a copy of one enemy's state.
type EnemyView struct {
	ID     uint32
	Body   physics.Body
	Facing float64
}

// Snapshot is a copy of the session state for renderers and tests.
type Snapshot struct {
	Tick     uint64
	Player   physics.Body
	Enemies  []EnemyView // spawn order
	Score    int
	GameOver bool
}

// Session is one play-through of a level. It is not safe for concurrent use;
// GameLoop serializes access to it.
type Session struct {
	settings config.Settings
	level    *leveldata.CollisionData
	world    donburi.World
	systems  []systems.System
	log      *zap.SugaredLogger

	// enemy ID -> entity, kept in step with GameStateData.Enemies
	ids    *intmap.Map[uint32, donburi.Entity]
	nextID uint32
}

// Option configures a Session.
type Option func(*Session)

// WithLogger routes session logs to log.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSystems replaces the default per-tick system order.
func WithSystems(sys ...systems.System) Option {
	return func(s *Session) {
		s.systems = sys
	}
}

// NewSession validates settings and populates a world from level.
func NewSession(level *leveldata.CollisionData, settings config.Settings, opts ...Option) (*Session, error) {
	if level == nil {
		return nil, fmt.Errorf("new session: %w", ErrNoLevel)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	s := &Session{
		settings: settings,
		level:    level,
		systems:  systems.Default(),
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.populate()
	s.log.Infow("session started",
		"tiles", len(level.Tiles),
		"enemies", len(level.EnemySpawns),
		"cols", level.Cols,
		"rows", level.Rows,
	)
	return s, nil
}

func (s *Session) populate() {
	s.world = donburi.NewWorld()
	s.ids = intmap.New[uint32, donburi.Entity](max(len(s.level.EnemySpawns), 8))

	factory.CreateLevel(s.world, s.settings, s.level)
	state := components.GameState.Get(factory.CreateGameState(s.world))

	x, y := s.settings.Player.SpawnX, s.settings.Player.SpawnY
	if sp := s.level.PlayerSpawn; sp != nil {
		x, y = sp.X, sp.Y
	}
	factory.CreatePlayer(s.world, s.settings, x, y)

	for _, sp := range s.level.EnemySpawns {
		s.nextID++
		e := factory.CreateEnemy(s.world, s.settings, s.nextID, sp.X, sp.Y)
		state.Enemies = append(state.Enemies, e.Entity())
		s.ids.Put(s.nextID, e.Entity())
	}
}

func (s *Session) state() *components.GameStateData {
	entry, _ := components.GameState.First(s.world)
	return components.GameState.Get(entry)
}

// Tick advances the session by dt seconds, clamped to [0, MaxDelta]. Once the
// game is over Tick does nothing and reports GameOver. An error means a body
// had an invalid shape; the tick is abandoned where it failed.
func (s *Session) Tick(in physics.Input, dt float64) (TickResult, error) {
	state := s.state()
	if state.GameOver {
		return TickResult{Tick: state.Tick, Score: state.Score, GameOver: true}, nil
	}

	state.Tick++
	state.DT = gamemath.ClampDelta(dt, s.settings.Physics.MaxDelta)
	state.Input = in
	state.Events = nil

	for _, sys := range s.systems {
		sys(s.world)
	}

	if err := state.Err; err != nil {
		state.Err = nil
		return TickResult{Tick: state.Tick, Events: state.Events, Score: state.Score}, fmt.Errorf("tick %d: %w", state.Tick, err)
	}

	for _, ev := range state.Events {
		if ev.Kind == messages.EnemyDespawned {
			s.ids.Del(ev.EnemyID)
		}
		s.log.Debugw(ev.Kind.String(), "tick", ev.Tick, "enemy", ev.EnemyID, "x", ev.X, "y", ev.Y, "score", ev.Score)
	}

	return TickResult{
		Tick:     state.Tick,
		Events:   state.Events,
		Score:    state.Score,
		GameOver: state.GameOver,
	}, nil
}

// Restart resets score and player and re-creates enemies from the level's
// spawn list. Restarted enemies get fresh IDs.
func (s *Session) Restart() {
	s.populate()
	s.log.Infow("session restarted", "enemies", len(s.level.EnemySpawns))
}

// ReplaceLevel swaps the static grid in place. Entities keep their state, so
// a body left inside new geometry is pushed out by the next move. Call it
// between ticks only.
func (s *Session) ReplaceLevel(level *leveldata.CollisionData) error {
	if level == nil {
		return fmt.Errorf("replace level: %w", ErrNoLevel)
	}
	entry, _ := components.Level.First(s.world)
	ld := components.Level.Get(entry)
	ld.Grid = physics.NewGrid(level)
	ld.Data = level
	s.level = level

	s.log.Infow("level replaced", "tiles", len(level.Tiles))
	return nil
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	state := s.state()
	snap := Snapshot{
		Tick:     state.Tick,
		Score:    state.Score,
		GameOver: state.GameOver,
		Enemies:  make([]EnemyView, 0, len(state.Enemies)),
	}
	if entry, ok := tags.Player.First(s.world); ok {
		snap.Player = *components.Body.Get(entry)
	}
	for _, entity := range state.Enemies {
		if v, ok := s.enemyView(entity); ok {
			snap.Enemies = append(snap.Enemies, v)
		}
	}
	return snap
}

// Enemy looks up a live enemy by ID.
func (s *Session) Enemy(id uint32) (EnemyView, bool) {
	entity, ok := s.ids.Get(id)
	if !ok {
		return EnemyView{}, false
	}
	return s.enemyView(entity)
}

func (s *Session) enemyView(entity donburi.Entity) (EnemyView, bool) {
	if !s.world.Valid(entity) {
		return EnemyView{}, false
	}
	entry := s.world.Entry(entity)
	enemy := components.Enemy.Get(entry)
	return EnemyView{
		ID:     enemy.ID,
		Body:   *components.Body.Get(entry),
		Facing: enemy.Patrol.Facing,
	}, true
}

// Settings returns the tuning the session was created with.
func (s *Session) Settings() config.Settings { return s.settings }

// Level returns the level data currently in play.
func (s *Session) Level() *leveldata.CollisionData { return s.level }
