package item

import (
	"fmt"
	"strings"
)

// WeaponType is the family of a weapon; it selects the base-stat row.
type WeaponType uint8

const (
	WeaponSword WeaponType = iota
	WeaponAxe
	WeaponMace
	WeaponDagger
	WeaponBow
	WeaponStaff
	WeaponWand
)

// WeaponTypes lists every family in declaration order.
var WeaponTypes = [...]WeaponType{WeaponSword, WeaponAxe, WeaponMace, WeaponDagger, WeaponBow, WeaponStaff, WeaponWand}

var weaponTypeNames = [...]string{"Sword", "Axe", "Mace", "Dagger", "Bow", "Staff", "Wand"}

func (w WeaponType) String() string {
	if int(w) < len(weaponTypeNames) {
		return weaponTypeNames[w]
	}
	return fmt.Sprintf("WeaponType(%d)", w)
}

// ParseWeaponType resolves a case-insensitive weapon family name.
func ParseWeaponType(s string) (WeaponType, error) {
	for i, name := range weaponTypeNames {
		if strings.EqualFold(s, name) {
			return WeaponType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weapon type %q", s)
}

// WeaponStats holds the raw weapon fields. The item's Stats list is a
// derived view of these and is rebuilt by RefreshStats.
type WeaponStats struct {
	Kind        WeaponType
	BaseDamage  float64
	AttackSpeed float64 // attacks per second
	AttackRange float64 // metres
	TwoHanded   bool
}

// DPS is damage per second before any defence.
func (w WeaponStats) DPS() float64 { return w.BaseDamage * w.AttackSpeed }

// baseStats is the fixed baseline for each weapon family.
var baseStats = map[WeaponType]WeaponStats{
	WeaponSword:  {Kind: WeaponSword, BaseDamage: 12, AttackSpeed: 1.0, AttackRange: 2},
	WeaponAxe:    {Kind: WeaponAxe, BaseDamage: 15, AttackSpeed: 0.8, AttackRange: 2},
	WeaponMace:   {Kind: WeaponMace, BaseDamage: 14, AttackSpeed: 0.85, AttackRange: 1.8},
	WeaponDagger: {Kind: WeaponDagger, BaseDamage: 8, AttackSpeed: 1.6, AttackRange: 1.2},
	WeaponBow:    {Kind: WeaponBow, BaseDamage: 10, AttackSpeed: 1.1, AttackRange: 15, TwoHanded: true},
	WeaponStaff:  {Kind: WeaponStaff, BaseDamage: 11, AttackSpeed: 0.9, AttackRange: 3, TwoHanded: true},
	WeaponWand:   {Kind: WeaponWand, BaseDamage: 7, AttackSpeed: 1.3, AttackRange: 12},
}

// BaseStats returns the baseline row for a weapon family.
func BaseStats(kind WeaponType) (WeaponStats, bool) {
	s, ok := baseStats[kind]
	return s, ok
}
