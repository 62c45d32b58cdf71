package components

import (
	"github.com/automoto/stompgrid/physics"
	"github.com/automoto/stompgrid/shared/messages"
	"github.com/yohamta/donburi"
)

// GameStateData is the per-session singleton the systems read and write.
type GameStateData struct {
	Tick  uint64
	DT    float64
	Input physics.Input

	// Enemies lists live enemies in spawn order. Systems iterate it instead
	// of the world so processing order is stable across removals.
	Enemies []donburi.Entity

	Events   []messages.Event
	Score    int
	GameOver bool
	// Err holds the first error a system hit this tick.
	Err error
}

// Emit appends an event stamped with the current tick.
func (s *GameStateData) Emit(ev messages.Event) {
	ev.Tick = s.Tick
	s.Events = append(s.Events, ev)
}

var GameState = donburi.NewComponentType[GameStateData]()
