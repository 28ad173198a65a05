package system

import (
	"slices"
	"time"

	"emoji-arpg/internal/component"
	"emoji-arpg/internal/ecs"
)

// Schedule arms a one-shot continuation on entity id that fires once delay
// has elapsed on the frame clock. A timer with the same name is replaced.
// Scheduling on a dead entity does nothing and reports false.
func Schedule(w *ecs.World, id ecs.EntityID, name string, delay time.Duration, fn func()) bool {
	if !w.Alive(id) {
		return false
	}
	tm := timersOf(w, id)
	tm.Active = slices.DeleteFunc(slices.Clone(tm.Active), func(t component.Timer) bool { return t.Name == name })
	tm.Active = append(tm.Active, component.Timer{Name: name, Remaining: delay, Fire: fn})
	w.Add(id, tm)
	return true
}

// Cancel disarms the named timer. It reports whether one was pending.
func Cancel(w *ecs.World, id ecs.EntityID, name string) bool {
	c := w.Get(id, component.CTimers)
	if c == nil {
		return false
	}
	tm := c.(component.Timers)
	n := len(tm.Active)
	tm.Active = slices.DeleteFunc(slices.Clone(tm.Active), func(t component.Timer) bool { return t.Name == name })
	w.Add(id, tm)
	return len(tm.Active) < n
}

// Pending returns the time left on the named timer.
func Pending(w *ecs.World, id ecs.EntityID, name string) (time.Duration, bool) {
	c := w.Get(id, component.CTimers)
	if c == nil {
		return 0, false
	}
	for _, t := range c.(component.Timers).Active {
		if t.Name == name {
			return t.Remaining, true
		}
	}
	return 0, false
}

// TickTimers advances every timer by dt and fires the due ones, per entity
// in scheduling order. A due timer that an earlier continuation cancelled or
// rescheduled, or whose owner it destroyed, is dropped. It returns the number
// fired.
func TickTimers(w *ecs.World, dt time.Duration) int {
	fired := 0
	for _, id := range w.Query(component.CTimers) {
		c := w.Get(id, component.CTimers)
		if c == nil {
			continue
		}
		active := slices.Clone(c.(component.Timers).Active)
		var due []string
		for i := range active {
			active[i].Remaining -= dt
			if active[i].Remaining <= 0 {
				due = append(due, active[i].Name)
			}
		}
		// Due timers stay committed until they fire so continuations can
		// cancel them.
		w.Add(id, component.Timers{Active: active})
		for _, name := range due {
			if !w.Alive(id) {
				break
			}
			t, ok := takeDue(w, id, name)
			if !ok {
				continue
			}
			if t.Fire != nil {
				t.Fire()
			}
			fired++
		}
	}
	return fired
}

// takeDue removes and returns the named timer if it is still due.
func takeDue(w *ecs.World, id ecs.EntityID, name string) (component.Timer, bool) {
	tm := timersOf(w, id)
	i := slices.IndexFunc(tm.Active, func(t component.Timer) bool { return t.Name == name })
	if i < 0 || tm.Active[i].Remaining > 0 {
		return component.Timer{}, false
	}
	t := tm.Active[i]
	tm.Active = slices.Delete(slices.Clone(tm.Active), i, i+1)
	w.Add(id, tm)
	return t, true
}

func timersOf(w *ecs.World, id ecs.EntityID) component.Timers {
	if c := w.Get(id, component.CTimers); c != nil {
		return c.(component.Timers)
	}
	return component.Timers{}
}
