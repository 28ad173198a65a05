package item

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
)

// Type categorises an item and decides which equip slots accept it.
type Type uint8

const (
	TypeWeapon Type = iota
	TypeArmor
	TypeAccessory
	TypeConsumable
)

var typeNames = [...]string{"Weapon", "Armor", "Accessory", "Consumable"}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", t)
}

// ParseType resolves a case-insensitive type name.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if strings.EqualFold(s, name) {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown item type %q", s)
}

// Stat is one named line of an item's displayed stats.
type Stat struct {
	Name  string
	Value float64
}

// Display stat names shared by generation and presentation.
const (
	StatDamage      = "Damage"
	StatAttackSpeed = "Attack Speed"
	StatRange       = "Range"
	StatDPS         = "DPS"
	StatTwoHanded   = "Requires Two Hands"
	StatArmor       = "Armor"
)

// Item is either an authored template or an instance cloned from one.
// Instances are owned by exactly one container at a time: an inventory slot,
// an equip slot, or a world pickup.
type Item struct {
	ID           uuid.UUID
	Name         string
	Description  string
	Icon         string
	Type         Type
	Rarity       Rarity
	Stackable    bool
	MaxStackSize int
	Quantity     int
	Stats        []Stat
	Weapon       *WeaponStats // nil unless Type == TypeWeapon
}

// Clone returns an independent instance carrying a fresh ID.
func (it *Item) Clone() *Item {
	c := *it
	c.ID = uuid.New()
	if it.Stats != nil {
		c.Stats = make([]Stat, len(it.Stats))
		copy(c.Stats, it.Stats)
	}
	if it.Weapon != nil {
		w := *it.Weapon
		c.Weapon = &w
	}
	return &c
}

// RarityColor returns the fixed display colour for the item's rarity.
func (it *Item) RarityColor() tcell.Color { return it.Rarity.Color() }

// IsWeapon reports whether the item carries weapon stats.
func (it *Item) IsWeapon() bool { return it.Weapon != nil }

// Stat looks up a displayed stat by name.
func (it *Item) Stat(name string) (float64, bool) {
	for _, s := range it.Stats {
		if s.Name == name {
			return s.Value, true
		}
	}
	return 0, false
}

// StackLimit is MaxStackSize clamped to at least one.
func (it *Item) StackLimit() int {
	if !it.Stackable || it.MaxStackSize < 1 {
		return 1
	}
	return it.MaxStackSize
}

// Count is Quantity clamped to at least one.
func (it *Item) Count() int {
	if it.Quantity < 1 {
		return 1
	}
	return it.Quantity
}

// CanStackWith reports whether other can merge into this stack.
func (it *Item) CanStackWith(other *Item) bool {
	return it.Stackable && other.Stackable && it.Name == other.Name && it.Type == other.Type
}

// RefreshStats rebuilds the displayed stat list from the weapon fields.
// Non-weapons keep their authored stats.
func (it *Item) RefreshStats() {
	if it.Weapon == nil {
		return
	}
	w := it.Weapon
	stats := []Stat{
		{Name: StatDamage, Value: w.BaseDamage},
		{Name: StatAttackSpeed, Value: w.AttackSpeed},
		{Name: StatRange, Value: w.AttackRange},
		{Name: StatDPS, Value: w.DPS()},
	}
	if w.TwoHanded {
		stats = append(stats, Stat{Name: StatTwoHanded, Value: 1})
	}
	it.Stats = stats
}

func (it *Item) String() string {
	if it.Count() > 1 {
		return fmt.Sprintf("%s x%d", it.Name, it.Count())
	}
	return it.Name
}
