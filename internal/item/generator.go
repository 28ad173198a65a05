package item

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Source is the randomness a Generator draws from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// NewSource returns a seeded PCG-backed Source.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generator rolls weapon stats and names.
type Generator struct {
	src Source
}

// NewGenerator creates a Generator drawing from src.
func NewGenerator(src Source) *Generator {
	return &Generator{src: src}
}

// Source exposes the generator's randomness so callers share one stream.
func (g *Generator) Source() Source { return g.src }

// Apply rerolls a weapon instance at the given rarity: stats are reset to the
// family baseline, scaled, renamed, and the displayed stat list is rebuilt.
// Non-weapons are left untouched and Apply reports false.
func (g *Generator) Apply(it *Item, rarity Rarity) bool {
	if it.Weapon == nil {
		return false
	}
	base, ok := BaseStats(it.Weapon.Kind)
	if !ok {
		base, _ = BaseStats(WeaponAxe)
	}

	m := RarityMultiplier(rarity, g.src)
	w := base
	w.BaseDamage = base.BaseDamage * m
	// Rarity mostly buys damage, not attack frequency.
	w.AttackSpeed = base.AttackSpeed * (1 + (m-1)*0.5)

	it.Weapon = &w
	it.Type = TypeWeapon
	it.Rarity = rarity
	it.Name = g.weaponName(w.Kind, rarity)
	it.Description = describeWeapon(w, rarity)
	it.RefreshStats()
	return true
}

func (g *Generator) weaponName(kind WeaponType, rarity Rarity) string {
	pool := prefixPools[rarity.clamp()]
	prefix := pool[g.src.IntN(len(pool))]
	suffix := ""
	if rarity >= RarityRare {
		suffix = suffixes[g.src.IntN(len(suffixes))]
	}
	return fmt.Sprintf("%s %s%s", prefix, kind, suffix)
}

func describeWeapon(w WeaponStats, rarity Rarity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A %s %s", strings.ToLower(rarity.String()), strings.ToLower(w.Kind.String()))
	if w.TwoHanded {
		b.WriteString(", wielded in both hands")
	}
	fmt.Fprintf(&b, " (%.1f DPS). %s", w.DPS(), rarityFlavor[rarity.clamp()])
	return b.String()
}
