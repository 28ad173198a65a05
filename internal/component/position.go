package component

import (
	"math"

	"emoji-arpg/internal/ecs"
)

const CPosition ecs.ComponentType = 1

// Position is a world-space location in metres. The terminal sandbox draws
// one cell per metre.
type Position struct {
	X, Y float64
}

func (Position) Type() ecs.ComponentType { return CPosition }

// DistanceTo is the straight-line distance between two positions.
func (p Position) DistanceTo(o Position) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Offset returns p moved by (dx, dy).
func (p Position) Offset(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Cell rounds to the nearest terminal cell.
func (p Position) Cell() (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}
