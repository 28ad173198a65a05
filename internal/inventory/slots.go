package inventory

import "emoji-arpg/internal/item"

// Equip slot layout. Indices from SlotReserved upward exist but no item type
// may occupy them.
const (
	SlotWeapon     = 0
	SlotArmor      = 1
	SlotAccessoryA = 2
	SlotAccessoryB = 3
	SlotReserved   = 4
)

const (
	DefaultSize       = 20
	DefaultEquipSlots = 10
	MinEquipSlots     = SlotReserved
)

// SlotAccepts reports whether an item of type t may sit in equip slot.
func SlotAccepts(slot int, t item.Type) bool {
	switch t {
	case item.TypeWeapon:
		return slot == SlotWeapon
	case item.TypeArmor:
		return slot == SlotArmor
	case item.TypeAccessory:
		return slot == SlotAccessoryA || slot == SlotAccessoryB
	default:
		return false
	}
}

// SlotName is the display label of an equip slot.
func SlotName(slot int) string {
	switch slot {
	case SlotWeapon:
		return "Weapon"
	case SlotArmor:
		return "Armor"
	case SlotAccessoryA:
		return "Accessory A"
	case SlotAccessoryB:
		return "Accessory B"
	default:
		return "Reserved"
	}
}

// autoSlot picks the equip slot for t: accessories prefer an empty A/B slot
// and otherwise replace A.
func (inv *Inventory) autoSlot(t item.Type) int {
	switch t {
	case item.TypeWeapon:
		return SlotWeapon
	case item.TypeArmor:
		return SlotArmor
	case item.TypeAccessory:
		if inv.equip[SlotAccessoryA] == nil {
			return SlotAccessoryA
		}
		if inv.equip[SlotAccessoryB] == nil {
			return SlotAccessoryB
		}
		return SlotAccessoryA
	default:
		return -1
	}
}
