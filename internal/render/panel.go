package render

import (
	"fmt"

	"emoji-arpg/internal/inventory"
	"emoji-arpg/internal/item"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// PanelWidth is the default number of columns the inventory panel occupies.
const PanelWidth = 40

// Focus selects which list the cursor moves through.
type Focus uint8

const (
	FocusBackpack Focus = iota
	FocusEquipment
)

// PanelState is everything the panel shows. The panel holds no state of its
// own; callers rebuild this on every change notification.
type PanelState struct {
	Inventory *inventory.Inventory
	Nearby    []*item.Item
	Focus     Focus
	Cursor    int
}

// Panel draws equipment, backpack contents and nearby pickups in a column
// on the right of the screen.
type Panel struct {
	screen tcell.Screen
	x      int
	width  int
	height int
}

// NewPanel creates a panel starting at column x.
func NewPanel(screen tcell.Screen, x, width int) *Panel {
	return &Panel{screen: screen, x: x, width: width}
}

// X is the panel's first column.
func (p *Panel) X() int { return p.x }

// Draw renders st. Rows that do not fit are dropped.
func (p *Panel) Draw(st PanelState) {
	_, h := p.screen.Size()
	p.height = h - HUDRows
	p.clear()

	headerStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	inv := st.Inventory

	y := 0
	p.line(y, fmt.Sprintf("EQUIPMENT %d/%d", inv.EquippedCount(), inventory.MinEquipSlots), headerStyle)
	y++
	for slot := 0; slot < inventory.MinEquipSlots; slot++ {
		label := fmt.Sprintf("%-12s", inventory.SlotName(slot))
		selected := st.Focus == FocusEquipment && st.Cursor == slot
		p.itemRow(y, label, inv.GetEquippedItemAt(slot), selected)
		y++
	}
	y++

	p.line(y, fmt.Sprintf("BACKPACK %d/%d", inv.GetItemCount(), inv.Size()), headerStyle)
	y++
	reserve := 0
	if len(st.Nearby) > 0 {
		reserve = min(len(st.Nearby), 3) + 2
	}
	// Scroll so the cursor stays visible, keeping one row for the overflow note.
	rows := max(p.height-reserve-y-1, 1)
	start := 0
	if st.Focus == FocusBackpack && st.Cursor >= rows {
		start = st.Cursor - rows + 1
	}
	for i := start; i < inv.Size(); i++ {
		if i-start >= rows && i < inv.Size()-1 {
			p.line(y, fmt.Sprintf("  … %d more", inv.Size()-i), dim)
			y++
			break
		}
		selected := st.Focus == FocusBackpack && st.Cursor == i
		p.itemRow(y, fmt.Sprintf("%2d", i+1), inv.GetItemAt(i), selected)
		y++
	}
	y++

	if len(st.Nearby) == 0 {
		return
	}
	p.line(y, "NEARBY", headerStyle)
	y++
	for _, it := range st.Nearby {
		if y >= p.height {
			return
		}
		p.itemRow(y, " ", it, false)
		y++
	}
}

// Detail returns a short description block for it, used by the HUD.
func Detail(it *item.Item) []string {
	if it == nil {
		return nil
	}
	lines := []string{fmt.Sprintf("%s [%s %s]", it.Name, it.Rarity, it.Type)}
	for _, s := range it.Stats {
		lines = append(lines, fmt.Sprintf("%s: %.1f", s.Name, s.Value))
	}
	return lines
}

func (p *Panel) itemRow(y int, label string, it *item.Item, selected bool) {
	if y >= p.height {
		return
	}
	style := tcell.StyleDefault
	if selected {
		style = style.Reverse(true)
	}
	col := drawText(p.screen, p.x, y, label+" ", style.Foreground(tcell.ColorGray))
	if it == nil {
		p.fill(col, y, "-", style.Foreground(tcell.ColorDarkGray))
		return
	}
	icon := it.Icon
	if icon == "" {
		icon = "?"
	}
	// Icons are padded to two columns so names line up regardless of width.
	icon = runewidth.FillRight(icon, 2)
	col = drawText(p.screen, col, y, icon+" ", style)
	p.fill(col, y, it.String(), style.Foreground(it.RarityColor()))
}

// fill writes text truncated to the panel's right edge.
func (p *Panel) fill(col, y int, text string, style tcell.Style) {
	room := p.x + p.width - col
	if room <= 0 {
		return
	}
	drawText(p.screen, col, y, runewidth.Truncate(text, room, "…"), style)
}

func (p *Panel) line(y int, text string, style tcell.Style) {
	if y >= p.height {
		return
	}
	p.fill(p.x, y, text, style)
}

func (p *Panel) clear() {
	for y := 0; y < p.height; y++ {
		for x := p.x; x < p.x+p.width; x++ {
			p.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
	for y := 0; y < p.height; y++ {
		p.screen.SetContent(p.x-1, y, '│', nil, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}
}
