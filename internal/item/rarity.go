package item

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Rarity is a quality tier. Higher values are rarer.
type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityLegendary
	RarityUnique
)

// Rarities lists every tier in sampling order.
var Rarities = [...]Rarity{RarityCommon, RarityRare, RarityLegendary, RarityUnique}

var rarityNames = [...]string{"Common", "Rare", "Legendary", "Unique"}

func (r Rarity) String() string {
	if int(r) < len(rarityNames) {
		return rarityNames[r]
	}
	return fmt.Sprintf("Rarity(%d)", r)
}

// ParseRarity resolves a case-insensitive rarity name.
func ParseRarity(s string) (Rarity, error) {
	for i, name := range rarityNames {
		if strings.EqualFold(s, name) {
			return Rarity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rarity %q", s)
}

// Color returns the fixed display colour of the tier.
func (r Rarity) Color() tcell.Color {
	switch r {
	case RarityRare:
		return tcell.ColorBlue
	case RarityLegendary:
		return tcell.ColorPurple
	case RarityUnique:
		return tcell.ColorOrange
	default:
		return tcell.ColorWhite
	}
}

// multiplierBand is the base stat multiplier of a tier plus its jitter range.
type multiplierBand struct {
	base     float64
	jitterLo float64
	jitterHi float64
}

// Jitter widens and skews upward with rarity.
var multiplierBands = [...]multiplierBand{
	RarityCommon:    {base: 1.0, jitterLo: -0.1, jitterHi: 0.1},
	RarityRare:      {base: 1.5, jitterLo: -0.1, jitterHi: 0.2},
	RarityLegendary: {base: 2.25, jitterLo: 0, jitterHi: 0.25},
	RarityUnique:    {base: 3.0, jitterLo: 0.1, jitterHi: 0.5},
}

// MultiplierRange returns the closed bounds a tier's multiplier can take.
func (r Rarity) MultiplierRange() (lo, hi float64) {
	b := multiplierBands[r.clamp()]
	return b.base + b.jitterLo, b.base + b.jitterHi
}

// RarityMultiplier draws the stat multiplier for a tier.
func RarityMultiplier(r Rarity, src Source) float64 {
	b := multiplierBands[r.clamp()]
	return b.base + b.jitterLo + src.Float64()*(b.jitterHi-b.jitterLo)
}

func (r Rarity) clamp() Rarity {
	if r > RarityUnique {
		return RarityUnique
	}
	return r
}
