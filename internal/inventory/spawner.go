package inventory

//go:generate mockgen -destination=mock/mock_spawner.go -package=mockinventory -source=spawner.go

import (
	"emoji-arpg/internal/component"
	"emoji-arpg/internal/ecs"
	"emoji-arpg/internal/item"
)

// Spawner materialises a dropped item as a world pickup. On success the
// returned entity owns the item.
type Spawner interface {
	CreateWorldPickup(it *item.Item, pos component.Position) (ecs.EntityID, error)
}
