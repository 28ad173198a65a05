// Package inventory is the sole authority over where an item instance lives:
// a backpack slot, an equip slot, or (after a drop) the world.
//
// Every mutation is all-or-nothing. An item pointer appears at most once
// across both slot arrays, and nil marks an empty slot.
package inventory

import (
	"fmt"
	"log/slog"
	"slices"

	"emoji-arpg/internal/component"
	"emoji-arpg/internal/item"
	"emoji-arpg/internal/metrics"
)

// Inventory is a fixed-capacity backpack plus equip slots. It is not safe
// for concurrent use; callers drive it from a single update loop.
type Inventory struct {
	slots []*item.Item
	equip []*item.Item

	spawner    Spawner
	dropOrigin func() component.Position
	logger     *slog.Logger
	metrics    *metrics.Metrics

	invSubs   subscribers
	equipSubs subscribers
	notifying bool
}

type options struct {
	size       int
	equipSlots int
	spawner    Spawner
	dropOrigin func() component.Position
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// Option configures an Inventory.
type Option func(*options)

func WithSize(n int) Option {
	return func(o *options) { o.size = n }
}

func WithEquipSlots(n int) Option {
	return func(o *options) { o.equipSlots = n }
}

// WithSpawner sets the world collaborator used by drops. Without one every
// drop fails and the item stays put.
func WithSpawner(s Spawner) Option {
	return func(o *options) { o.spawner = s }
}

// WithDropOrigin sets where DropItem places items, usually the owner's feet.
func WithDropOrigin(fn func() component.Position) Option {
	return func(o *options) { o.dropOrigin = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New creates an empty inventory. Size must be positive and there must be at
// least MinEquipSlots equip slots.
func New(opts ...Option) (*Inventory, error) {
	o := options{
		size:       DefaultSize,
		equipSlots: DefaultEquipSlots,
		logger:     slog.Default(),
		dropOrigin: func() component.Position { return component.Position{} },
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.size < 1 {
		return nil, fmt.Errorf("%w: %d slots", ErrInvalidSize, o.size)
	}
	if o.equipSlots < MinEquipSlots {
		return nil, fmt.Errorf("%w: %d equip slots, need %d", ErrInvalidSize, o.equipSlots, MinEquipSlots)
	}
	return &Inventory{
		slots:      make([]*item.Item, o.size),
		equip:      make([]*item.Item, o.equipSlots),
		spawner:    o.spawner,
		dropOrigin: o.dropOrigin,
		logger:     o.logger,
		metrics:    o.metrics,
	}, nil
}

// Size is the number of backpack slots.
func (inv *Inventory) Size() int { return len(inv.slots) }

// EquipSlotCount is the number of equip slots, reserved ones included.
func (inv *Inventory) EquipSlotCount() int { return len(inv.equip) }

// HasItem reports whether it sits in a backpack slot.
func (inv *Inventory) HasItem(it *item.Item) bool { return inv.IndexOf(it) >= 0 }

// IsEquipped reports whether it sits in an equip slot.
func (inv *Inventory) IsEquipped(it *item.Item) bool { return inv.equipIndexOf(it) >= 0 }

// IndexOf returns the backpack slot holding it, or -1.
func (inv *Inventory) IndexOf(it *item.Item) int {
	if it == nil {
		return -1
	}
	return slices.Index(inv.slots, it)
}

func (inv *Inventory) equipIndexOf(it *item.Item) int {
	if it == nil {
		return -1
	}
	return slices.Index(inv.equip, it)
}

// GetItemAt returns the item in backpack slot i, or nil when the slot is
// empty or i is out of range.
func (inv *Inventory) GetItemAt(i int) *item.Item {
	if i < 0 || i >= len(inv.slots) {
		inv.logger.Error("backpack index out of range", "slot", i, "size", len(inv.slots))
		return nil
	}
	return inv.slots[i]
}

// GetEquippedItemAt returns the item in equip slot i, or nil.
func (inv *Inventory) GetEquippedItemAt(i int) *item.Item {
	if i < 0 || i >= len(inv.equip) {
		inv.logger.Error("equip index out of range", "slot", i, "size", len(inv.equip))
		return nil
	}
	return inv.equip[i]
}

// GetItemCount is the number of occupied backpack slots. A stack counts once.
func (inv *Inventory) GetItemCount() int {
	n := 0
	for _, it := range inv.slots {
		if it != nil {
			n++
		}
	}
	return n
}

// EquippedCount is the number of occupied equip slots.
func (inv *Inventory) EquippedCount() int {
	n := 0
	for _, it := range inv.equip {
		if it != nil {
			n++
		}
	}
	return n
}

// QuantityOf sums stack sizes of backpack items with the given name.
func (inv *Inventory) QuantityOf(name string) int {
	n := 0
	for _, it := range inv.slots {
		if it != nil && it.Name == name {
			n += it.Count()
		}
	}
	return n
}

// IsFull reports whether no backpack slot is empty.
func (inv *Inventory) IsFull() bool { return inv.firstEmpty() < 0 }

// Items returns a copy of the backpack slots; nil entries are empty slots.
func (inv *Inventory) Items() []*item.Item { return slices.Clone(inv.slots) }

// Equipped returns a copy of the equip slots.
func (inv *Inventory) Equipped() []*item.Item { return slices.Clone(inv.equip) }

func (inv *Inventory) firstEmpty() int {
	return slices.Index(inv.slots, nil)
}

func (inv *Inventory) emptyCount() int {
	n := 0
	for _, it := range inv.slots {
		if it == nil {
			n++
		}
	}
	return n
}
