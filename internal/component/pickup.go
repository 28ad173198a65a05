package component

import (
	"emoji-arpg/internal/ecs"
	"emoji-arpg/internal/item"
)

// CPickup is the ECS component type for world pickup entities.
const CPickup ecs.ComponentType = 3

// Pickup holds the item instance a world entity represents. The entity is
// the item's only owner while it lies in the world.
type Pickup struct {
	Item *item.Item
	// Claimable stays false until the drop grace period has elapsed, so an
	// item is not re-collected on the frame it was dropped.
	Claimable bool
}

func (Pickup) Type() ecs.ComponentType { return CPickup }
