package system

import (
	"emoji-arpg/internal/component"
	"emoji-arpg/internal/ecs"
)

// Bounds is the walkable rectangle of the arena, inclusive of Min and Max.
type Bounds struct {
	Min, Max component.Position
}

// Contains reports whether p lies inside b.
func (b Bounds) Contains(p component.Position) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// TryMove moves entity id by (dx, dy) if the destination stays inside b.
func TryMove(w *ecs.World, b Bounds, id ecs.EntityID, dx, dy float64) bool {
	posComp := w.Get(id, component.CPosition)
	if posComp == nil {
		return false
	}
	next := posComp.(component.Position).Offset(dx, dy)
	if !b.Contains(next) {
		return false
	}
	w.Add(id, next)
	return true
}
