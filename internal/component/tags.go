package component

import "emoji-arpg/internal/ecs"

const (
	CTagPlayer ecs.ComponentType = 8
	CTagPickup ecs.ComponentType = 9
)

// TagPlayer marks the player-controlled entity.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }

// TagPickup marks an item lying in the world.
type TagPickup struct{}

func (TagPickup) Type() ecs.ComponentType { return CTagPickup }
