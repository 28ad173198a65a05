package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emoji-arpg/internal/ecs"
)

func TestTimerFiresAfterDelay(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	fired := 0
	require.True(t, Schedule(w, id, "cooldown", 300*time.Millisecond, func() { fired++ }))

	assert.Zero(t, TickTimers(w, 100*time.Millisecond))
	left, ok := Pending(w, id, "cooldown")
	require.True(t, ok)
	assert.Equal(t, 200*time.Millisecond, left)

	TickTimers(w, 100*time.Millisecond)
	assert.Zero(t, fired)
	assert.Equal(t, 1, TickTimers(w, 100*time.Millisecond))
	assert.Equal(t, 1, fired)

	TickTimers(w, time.Second)
	assert.Equal(t, 1, fired, "one-shot")
	_, ok = Pending(w, id, "cooldown")
	assert.False(t, ok)
}

func TestTimersFireInScheduleOrder(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	var order []string
	Schedule(w, id, "b", 50*time.Millisecond, func() { order = append(order, "b") })
	Schedule(w, id, "a", 10*time.Millisecond, func() { order = append(order, "a") })

	TickTimers(w, 100*time.Millisecond)
	assert.Equal(t, []string{"b", "a"}, order)
}

func TestDestroyedOwnerCancelsTimer(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	fired := false
	Schedule(w, id, "invincible", time.Second, func() { fired = true })

	w.DestroyEntity(id)
	TickTimers(w, 2*time.Second)
	assert.False(t, fired)
}

func TestContinuationDestroyingOwnerDropsLaterOnes(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	second := false
	Schedule(w, id, "first", time.Millisecond, func() { w.DestroyEntity(id) })
	Schedule(w, id, "second", time.Millisecond, func() { second = true })

	assert.Equal(t, 1, TickTimers(w, time.Second))
	assert.False(t, second)
}

func TestContinuationCancelsTimerDueSameTick(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	second := false
	Schedule(w, id, "first", time.Millisecond, func() { Cancel(w, id, "second") })
	Schedule(w, id, "second", time.Millisecond, func() { second = true })

	assert.Equal(t, 1, TickTimers(w, time.Second))
	assert.False(t, second)
	_, ok := Pending(w, id, "second")
	assert.False(t, ok)
}

func TestContinuationPostponesTimerDueSameTick(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	calls := ""
	Schedule(w, id, "first", time.Millisecond, func() {
		Schedule(w, id, "second", time.Second, func() { calls += "late" })
	})
	Schedule(w, id, "second", time.Millisecond, func() { calls += "early" })

	assert.Equal(t, 1, TickTimers(w, 10*time.Millisecond))
	assert.Empty(t, calls)
	assert.Equal(t, 1, TickTimers(w, time.Second))
	assert.Equal(t, "late", calls)
}

func TestContinuationMayReschedule(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	n := 0
	var tick func()
	tick = func() {
		n++
		Schedule(w, id, "pulse", 10*time.Millisecond, tick)
	}
	Schedule(w, id, "pulse", 10*time.Millisecond, tick)

	for i := 0; i < 3; i++ {
		TickTimers(w, 10*time.Millisecond)
	}
	assert.Equal(t, 3, n)
}

func TestCancelAndReplace(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	calls := ""
	Schedule(w, id, "t", time.Second, func() { calls += "old" })
	Schedule(w, id, "t", 2*time.Second, func() { calls += "new" })

	left, _ := Pending(w, id, "t")
	assert.Equal(t, 2*time.Second, left, "same name replaces")

	assert.True(t, Cancel(w, id, "t"))
	assert.False(t, Cancel(w, id, "t"))
	TickTimers(w, 5*time.Second)
	assert.Empty(t, calls)
}

func TestScheduleOnDeadEntity(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	w.DestroyEntity(id)
	assert.False(t, Schedule(w, id, "x", time.Second, func() {}))
	assert.False(t, Cancel(w, id, "x"))
}
