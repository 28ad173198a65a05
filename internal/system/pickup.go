package system

import (
	"emoji-arpg/internal/component"
	"emoji-arpg/internal/ecs"
	"emoji-arpg/internal/inventory"
	"emoji-arpg/internal/item"
)

// PickupClaimer is the part of the world item lifecycle the pickup system
// drives.
type PickupClaimer interface {
	Near(pos component.Position, radius float64) []ecs.EntityID
	Claimable(id ecs.EntityID) bool
	Claim(id ecs.EntityID, take func(*item.Item) bool) bool
}

// TryPickup moves every claimable pickup within radius of the player into
// inv, nearest first. Pickups the inventory refuses stay in the world and
// are counted as blocked.
func TryPickup(w *ecs.World, pickups PickupClaimer, inv *inventory.Inventory, player ecs.EntityID, radius float64) (claimed []*item.Item, blocked int) {
	c := w.Get(player, component.CPosition)
	if c == nil {
		return nil, 0
	}
	pos := c.(component.Position)

	for _, id := range pickups.Near(pos, radius) {
		if !pickups.Claimable(id) {
			continue
		}
		var got *item.Item
		ok := pickups.Claim(id, func(it *item.Item) bool {
			got = it
			return inv.AddItem(it)
		})
		if ok {
			claimed = append(claimed, got)
		} else {
			blocked++
		}
	}
	return claimed, blocked
}
