package archetypes

import (
	"github.com/automoto/stompgrid/components"
	"github.com/automoto/stompgrid/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Body,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.Enemy,
		components.Body,
	)
	Level = newArchetype(
		components.Level,
	)
	GameState = newArchetype(
		components.GameState,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(append(a.components, cs...)...))
}
