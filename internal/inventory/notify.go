package inventory

import "slices"

type subscriber struct {
	id int
	fn func()
}

// subscribers is an ordered handler list with cancellable registrations.
type subscribers struct {
	next int
	subs []subscriber
}

func (s *subscribers) add(fn func()) (cancel func()) {
	s.next++
	id := s.next
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}
}

func (s *subscribers) emit() {
	// Handlers may cancel themselves while we iterate.
	for _, sub := range slices.Clone(s.subs) {
		sub.fn()
	}
}

type change uint8

const (
	changedInventory change = 1 << iota
	changedEquipment
)

// OnInventoryChanged registers fn to run after every successful change to the
// backpack slots. Handlers receive no delta and should re-read state. They
// must not mutate the inventory; such calls are refused.
func (inv *Inventory) OnInventoryChanged(fn func()) (cancel func()) {
	return inv.invSubs.add(fn)
}

// OnEquipmentChanged registers fn to run after every successful change to the
// equip slots. The same rules as OnInventoryChanged apply.
func (inv *Inventory) OnEquipmentChanged(fn func()) (cancel func()) {
	return inv.equipSubs.add(fn)
}

func (inv *Inventory) notify(c change) {
	inv.notifying = true
	defer func() { inv.notifying = false }()
	if c&changedInventory != 0 {
		inv.invSubs.emit()
	}
	if c&changedEquipment != 0 {
		inv.equipSubs.emit()
	}
}
