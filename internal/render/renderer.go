package render

import (
	"sort"

	"emoji-arpg/internal/component"
	"emoji-arpg/internal/ecs"
	"emoji-arpg/internal/system"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDRows is the number of rows reserved at the bottom for status and log.
const HUDRows = 5

// Arena glyphs.
const (
	GlyphFloor = "·"
	GlyphEdge  = "▓"
)

// Renderer draws the arena and its entities onto a tcell screen. The right
// side of the screen is left to the inventory Panel.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	bounds system.Bounds
}

// NewRenderer creates a Renderer whose world view is viewW columns wide.
func NewRenderer(screen tcell.Screen, bounds system.Bounds, viewW int) *Renderer {
	_, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(viewW, h-HUDRows),
		bounds: bounds,
	}
}

// CenterOn recenters the camera on pos.
func (r *Renderer) CenterOn(pos component.Position) { r.camera.Center(pos) }

// DrawFrame clears the screen and renders the arena and entities.
func (r *Renderer) DrawFrame(w *ecs.World) {
	r.screen.Clear()
	r.drawArena()
	r.drawEntities(w)
}

// drawArena renders the walkable area and a one-cell border around it.
func (r *Renderer) drawArena() {
	floor := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	edge := tcell.StyleDefault.Foreground(tcell.ColorGray)
	minX, minY := r.bounds.Min.Cell()
	maxX, maxY := r.bounds.Max.Cell()
	for y := minY - 1; y <= maxY+1; y++ {
		for x := minX - 1; x <= maxX+1; x++ {
			sx, sy, onScreen := r.camera.WorldToScreen(component.Position{X: float64(x), Y: float64(y)})
			if !onScreen {
				continue
			}
			if x < minX || x > maxX || y < minY || y > maxY {
				r.putGlyph(sx, sy, GlyphEdge, edge)
				r.putGlyph(sx+1, sy, GlyphEdge, edge)
				continue
			}
			r.putGlyph(sx, sy, GlyphFloor, floor)
		}
	}
}

// renderableEntity holds sorting info for entity rendering.
type renderableEntity struct {
	id    ecs.EntityID
	order int
	pos   component.Position
	rend  component.Renderable
}

// drawEntities renders all entities with Renderable + Position, ordered by RenderOrder.
func (r *Renderer) drawEntities(w *ecs.World) {
	ids := w.Query(component.CRenderable, component.CPosition)
	entities := make([]renderableEntity, 0, len(ids))

	for _, id := range ids {
		pos := w.Get(id, component.CPosition).(component.Position)
		rend := w.Get(id, component.CRenderable).(component.Renderable)
		entities = append(entities, renderableEntity{id: id, order: rend.RenderOrder, pos: pos, rend: rend})
	}

	// Sort ascending by render order (lower = drawn first / behind).
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].order < entities[j].order
	})

	for _, e := range entities {
		sx, sy, onScreen := r.camera.WorldToScreen(e.pos)
		if !onScreen {
			continue
		}
		style := tcell.StyleDefault.Foreground(e.rend.FGColor).Background(e.rend.BGColor)
		r.putGlyph(sx, sy, e.rend.Glyph, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	putGlyph(r.screen, x, y, glyph, style)
}

func putGlyph(s tcell.Screen, x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	s.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		s.SetContent(x+1, y, ' ', nil, style)
	}
}
