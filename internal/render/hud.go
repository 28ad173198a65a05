package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawHUD renders the status line and message log at the bottom of the screen.
func (r *Renderer) DrawHUD(status string, messages []string) {
	drawHUD(r.screen, status, messages)
}

func drawHUD(s tcell.Screen, status string, messages []string) {
	_, screenH := s.Size()
	hudY := screenH - HUDRows

	drawHLine(s, hudY, tcell.ColorGray)
	drawText(s, 0, hudY+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	// Message log (last 3 messages).
	start := max(len(messages)-3, 0)
	for i, msg := range messages[start:] {
		drawText(s, 0, hudY+2+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
}

func drawHLine(s tcell.Screen, y int, color tcell.Color) {
	w, _ := s.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		s.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text from column x, advancing by each grapheme's display
// width so emoji icons do not overlap the following characters. It returns
// the column after the last cell written.
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		s.SetContent(col, y, ch, nil, style)
		col += w
	}
	return col
}
