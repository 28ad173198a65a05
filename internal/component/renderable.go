package component

import (
	"emoji-arpg/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

const CRenderable ecs.ComponentType = 2

// Draw layers, lowest first.
const (
	OrderPickup = 2
	OrderPlayer = 10
)

// Renderable is how an entity appears in the arena. Glyph may be a
// multi-rune emoji; pickups take FGColor from their item's rarity.
type Renderable struct {
	Glyph       string
	FGColor     tcell.Color
	BGColor     tcell.Color
	RenderOrder int
}

func (Renderable) Type() ecs.ComponentType { return CRenderable }
