package component

import (
	"time"

	"emoji-arpg/internal/ecs"
)

const CTimers ecs.ComponentType = 4

// Timer is a delayed one-shot continuation owned by an entity. It lives in
// the entity's component store, so destroying the entity drops it unfired.
type Timer struct {
	Name      string
	Remaining time.Duration
	Fire      func()
}

// Timers holds an entity's pending timers in scheduling order.
type Timers struct {
	Active []Timer
}

func (Timers) Type() ecs.ComponentType { return CTimers }
