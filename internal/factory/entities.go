package factory

import (
	"emoji-arpg/assets"
	"emoji-arpg/internal/component"
	"emoji-arpg/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

// NewPlayer creates the player entity at pos.
func NewPlayer(w *ecs.World, pos component.Position) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, pos)
	w.Add(id, component.Renderable{
		Glyph:       assets.GlyphPlayer,
		FGColor:     tcell.ColorYellow,
		BGColor:     tcell.ColorDefault,
		RenderOrder: component.OrderPlayer,
	})
	w.Add(id, component.Timers{})
	w.Add(id, component.TagPlayer{})
	return id
}
