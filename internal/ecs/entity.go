package ecs

import "strconv"

// EntityID identifies an entity for the lifetime of its World. IDs are
// never reused, so a stale handle simply stops resolving.
type EntityID uint64

// NilEntity is the zero value; no live entity has this ID.
const NilEntity EntityID = 0

func (id EntityID) String() string { return "#" + strconv.FormatUint(uint64(id), 10) }

// ComponentType keys a component store.
type ComponentType uint8

// Component is implemented by every value stored in the world.
type Component interface {
	Type() ComponentType
}
