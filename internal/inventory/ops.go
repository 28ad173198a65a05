package inventory

import (
	"context"
	"fmt"

	"emoji-arpg/internal/component"
	"emoji-arpg/internal/item"
)

// run applies one mutation. fn must either fully succeed or leave the
// inventory untouched; change handlers fire only on success.
func (inv *Inventory) run(op string, c change, it *item.Item, fn func() error) bool {
	var err error
	if inv.notifying {
		err = errReentrant
	} else {
		err = fn()
	}
	inv.metrics.InventoryOp(op, err == nil)

	attrs := []any{"op", op}
	if it != nil {
		attrs = append(attrs, "item", it.Name)
	}
	if err != nil {
		inv.logger.Log(context.Background(), severity(err), "inventory operation failed", append(attrs, "err", err)...)
		return false
	}
	inv.logger.Debug("inventory operation", attrs...)
	inv.notify(c)
	return true
}

// AddItem places it in the backpack. Stackable items first top up existing
// stacks of the same name and type; the incoming instance is absorbed when
// it fits entirely. Whatever remains takes the first empty slots in index
// order. If the whole quantity cannot be placed nothing changes.
func (inv *Inventory) AddItem(it *item.Item) bool {
	return inv.run("add", changedInventory, it, func() error { return inv.add(it) })
}

func (inv *Inventory) add(it *item.Item) error {
	if it == nil {
		return errNilItem
	}
	if inv.HasItem(it) || inv.IsEquipped(it) {
		return errAlreadyHeld
	}
	if it.StackLimit() > 1 {
		return inv.addStack(it)
	}
	i := inv.firstEmpty()
	if i < 0 {
		return errFull
	}
	inv.slots[i] = it
	return nil
}

func (inv *Inventory) addStack(it *item.Item) error {
	limit := it.StackLimit()
	remaining := it.Count()

	type topUp struct{ slot, n int }
	var plan []topUp
	for i, held := range inv.slots {
		if remaining == 0 {
			break
		}
		if held == nil || !held.CanStackWith(it) {
			continue
		}
		if room := held.StackLimit() - held.Count(); room > 0 {
			n := min(room, remaining)
			plan = append(plan, topUp{slot: i, n: n})
			remaining -= n
		}
	}
	need := (remaining + limit - 1) / limit
	if need > inv.emptyCount() {
		return fmt.Errorf("%w: %d more slots needed for %d %s", errFull, need, remaining, it.Name)
	}

	for _, p := range plan {
		inv.slots[p.slot].Quantity = inv.slots[p.slot].Count() + p.n
	}
	if remaining == 0 {
		return nil
	}
	// The incoming instance keeps the first chunk; further chunks are copies.
	chunk := min(remaining, limit)
	it.Quantity = chunk
	inv.slots[inv.firstEmpty()] = it
	remaining -= chunk
	for remaining > 0 {
		c := it.Clone()
		c.Quantity = min(remaining, limit)
		inv.slots[inv.firstEmpty()] = c
		remaining -= c.Quantity
	}
	return nil
}

// RemoveItem takes it out of the backpack by identity.
func (inv *Inventory) RemoveItem(it *item.Item) bool {
	return inv.run("remove", changedInventory, it, func() error {
		i := inv.IndexOf(it)
		if i < 0 {
			return errNotFound
		}
		inv.slots[i] = nil
		return nil
	})
}

// EquipItem moves it from the backpack into the slot its type dictates:
// Weapon 0, Armor 1, Accessory the first empty of 2 and 3 (else 2). An
// occupant is returned to the backpack in the same step.
func (inv *Inventory) EquipItem(it *item.Item) bool {
	return inv.run("equip", changedInventory|changedEquipment, it, func() error {
		if it == nil {
			return errNilItem
		}
		slot := inv.autoSlot(it.Type)
		if slot < 0 {
			return fmt.Errorf("%w: %s", errNotEquippable, it.Type)
		}
		return inv.equipAt(it, slot)
	})
}

// EquipItemAt is EquipItem with an explicit slot, which must be in range and
// accept the item's type.
func (inv *Inventory) EquipItemAt(it *item.Item, slot int) bool {
	return inv.run("equip", changedInventory|changedEquipment, it, func() error {
		if it == nil {
			return errNilItem
		}
		if slot < 0 || slot >= len(inv.equip) {
			return fmt.Errorf("%w: %d", errInvalidSlot, slot)
		}
		if !SlotAccepts(slot, it.Type) {
			if it.Type == item.TypeConsumable {
				return fmt.Errorf("%w: %s", errNotEquippable, it.Type)
			}
			return fmt.Errorf("%w: %s into %s", errWrongSlot, it.Type, SlotName(slot))
		}
		return inv.equipAt(it, slot)
	})
}

func (inv *Inventory) equipAt(it *item.Item, slot int) error {
	src := inv.IndexOf(it)
	if src < 0 {
		return errNotFound
	}
	// Vacating src first guarantees the occupant a backpack slot.
	inv.slots[src] = nil
	if old := inv.equip[slot]; old != nil {
		inv.slots[inv.firstEmpty()] = old
	}
	inv.equip[slot] = it
	return nil
}

// UnequipItem returns the item in equip slot to the backpack. With a full
// backpack the item stays equipped and the call fails.
func (inv *Inventory) UnequipItem(slot int) bool {
	var it *item.Item
	if slot >= 0 && slot < len(inv.equip) {
		it = inv.equip[slot]
	}
	return inv.run("unequip", changedInventory|changedEquipment, it, func() error {
		return inv.unequip(slot)
	})
}

func (inv *Inventory) unequip(slot int) error {
	if slot < 0 || slot >= len(inv.equip) {
		return fmt.Errorf("%w: %d", errInvalidSlot, slot)
	}
	it := inv.equip[slot]
	if it == nil {
		return fmt.Errorf("%w: %s", errEmptySlot, SlotName(slot))
	}
	i := inv.firstEmpty()
	if i < 0 {
		return errFull
	}
	inv.equip[slot] = nil
	inv.slots[i] = it
	return nil
}

// DropItem drops it at the configured drop origin.
func (inv *Inventory) DropItem(it *item.Item) bool {
	return inv.DropItemAt(it, inv.dropOrigin())
}

// DropItemAt removes it from the backpack and hands it to the world spawner.
// If no pickup can be created the item is put back in the same slot.
func (inv *Inventory) DropItemAt(it *item.Item, pos component.Position) bool {
	return inv.run("drop", changedInventory, it, func() error {
		i := inv.IndexOf(it)
		if i < 0 {
			return errNotFound
		}
		if inv.spawner == nil {
			return errNoSpawner
		}
		inv.slots[i] = nil
		if _, err := inv.spawner.CreateWorldPickup(it, pos); err != nil {
			inv.slots[i] = it
			return fmt.Errorf("%w: %w", errSpawnFailed, err)
		}
		return nil
	})
}

// DropEquipped unequips the item in slot and drops it at pos. These are two
// separate steps: if the drop fails the item ends up in the backpack.
func (inv *Inventory) DropEquipped(slot int, pos component.Position) bool {
	var it *item.Item
	if slot >= 0 && slot < len(inv.equip) {
		it = inv.equip[slot]
	}
	if !inv.UnequipItem(slot) {
		return false
	}
	return inv.DropItemAt(it, pos)
}
