package game

import (
	"fmt"

	"emoji-arpg/internal/inventory"
	"emoji-arpg/internal/item"
	"emoji-arpg/internal/render"
	"emoji-arpg/internal/system"
)

// Do performs one player action.
func (g *Game) Do(a Action) {
	switch a {
	case ActionNone:
		return
	case ActionQuit:
		g.quit = true
	case ActionLoot:
		g.GenerateLoot()
	case ActionPickup:
		g.Pickup()
	case ActionEquip:
		g.ToggleEquip()
	case ActionDrop:
		g.DropSelected()
	case ActionCursorUp:
		g.cursor--
		g.clampCursor()
	case ActionCursorDown:
		g.cursor++
		g.clampCursor()
	case ActionSwitchFocus:
		if g.focus == render.FocusBackpack {
			g.focus = render.FocusEquipment
		} else {
			g.focus = render.FocusBackpack
		}
		g.cursor = 0
	default:
		dx, dy := actionToDelta(a)
		g.Move(dx, dy)
	}
	g.dirty = true
}

// Move steps the player, staying inside the arena.
func (g *Game) Move(dx, dy float64) bool {
	return system.TryMove(g.world, g.bounds, g.playerID, dx, dy)
}

// rollLoot returns a fresh item: half the time a random weapon, otherwise a
// random authored non-weapon template.
func (g *Game) rollLoot() *item.Item {
	var it *item.Item
	if g.rng.IntN(2) == 0 {
		it = g.db.GenerateRandomWeapon()
	} else {
		it = g.randomTemplate()
	}
	g.session.generated(it)
	return it
}

func (g *Game) randomTemplate() *item.Item {
	var names []string
	for _, tpl := range g.db.Templates() {
		if !tpl.IsWeapon() {
			names = append(names, tpl.Name)
		}
	}
	if len(names) == 0 {
		return g.db.GenerateRandomWeapon()
	}
	it, _ := g.db.GetItem(names[g.rng.IntN(len(names))])
	return it
}

// GenerateLoot rolls an item into the backpack, or onto the ground at the
// player's feet when it does not fit.
func (g *Game) GenerateLoot() *item.Item {
	it := g.rollLoot()
	if g.inv.AddItem(it) {
		g.addMessage(fmt.Sprintf("You find %s.", it))
		return it
	}
	if _, err := g.pickups.CreateWorldPickup(it, g.playerPosition()); err != nil {
		g.logger.Error("failed to drop overflow loot", "item", it.Name, "error", err)
		return nil
	}
	g.addMessage(fmt.Sprintf("Your pack is full. %s falls to the ground.", it))
	return it
}

// Pickup collects every claimable item within reach.
func (g *Game) Pickup() int {
	claimed, blocked := system.TryPickup(g.world, g.pickups, g.inv, g.playerID, g.cfg.PickupRadius)
	for _, it := range claimed {
		g.addMessage(fmt.Sprintf("You pick up %s.", it))
	}
	g.session.Pickups += len(claimed)
	switch {
	case blocked > 0:
		g.addMessage(fmt.Sprintf("No room for %d item(s).", blocked))
	case len(claimed) == 0:
		g.addMessage("Nothing to pick up here.")
	}
	return len(claimed)
}

// ToggleEquip equips the selected backpack item, or unequips the selected
// equip slot.
func (g *Game) ToggleEquip() bool {
	if g.focus == render.FocusEquipment {
		it := g.inv.GetEquippedItemAt(g.cursor)
		if it == nil {
			g.addMessage("Nothing equipped there.")
			return false
		}
		if !g.inv.UnequipItem(g.cursor) {
			g.addMessage(fmt.Sprintf("No room to unequip %s.", it.Name))
			return false
		}
		g.session.Unequips++
		g.addMessage(fmt.Sprintf("You unequip %s.", it.Name))
		return true
	}

	it := g.selected()
	if it == nil {
		g.addMessage("Nothing selected.")
		return false
	}
	if !g.inv.EquipItem(it) {
		g.addMessage(fmt.Sprintf("You cannot equip %s.", it.Name))
		return false
	}
	g.session.Equips++
	g.addMessage(fmt.Sprintf("You equip %s.", it.Name))
	g.clampCursor()
	return true
}

// DropSelected drops the selected item at the player's feet.
func (g *Game) DropSelected() bool {
	it := g.selected()
	if it == nil {
		g.addMessage("Nothing selected.")
		return false
	}
	var ok bool
	if g.focus == render.FocusEquipment {
		ok = g.inv.DropEquipped(g.cursor, g.playerPosition())
	} else {
		ok = g.inv.DropItem(it)
	}
	if !ok {
		g.addMessage(fmt.Sprintf("You cannot drop %s.", it.Name))
		return false
	}
	g.session.Drops++
	g.addMessage(fmt.Sprintf("You drop %s.", it))
	return true
}

// selected returns the item under the cursor, if any.
func (g *Game) selected() *item.Item {
	if g.focus == render.FocusEquipment {
		if g.cursor >= g.inv.EquipSlotCount() {
			return nil
		}
		return g.inv.GetEquippedItemAt(g.cursor)
	}
	if g.cursor >= g.inv.Size() {
		return nil
	}
	return g.inv.GetItemAt(g.cursor)
}

func (g *Game) clampCursor() {
	n := g.inv.Size()
	if g.focus == render.FocusEquipment {
		n = inventory.MinEquipSlots
	}
	g.cursor = max(0, min(g.cursor, n-1))
}
