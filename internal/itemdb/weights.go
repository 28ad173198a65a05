package itemdb

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"emoji-arpg/internal/item"
)

// RarityWeights is the categorical loot distribution. Weights are relative:
// they are always normalised by Total and need not sum to 100.
type RarityWeights struct {
	Common    float64
	Rare      float64
	Legendary float64
	Unique    float64
}

// DefaultWeights is the stock 70/20/8/2 table.
func DefaultWeights() RarityWeights {
	return RarityWeights{Common: 70, Rare: 20, Legendary: 8, Unique: 2}
}

// ErrInvalidWeights is returned for tables that cannot be sampled.
var ErrInvalidWeights = errors.New("invalid rarity weights")

// values returns the weights in sampling order.
func (w RarityWeights) values() [len(item.Rarities)]float64 {
	return [...]float64{w.Common, w.Rare, w.Legendary, w.Unique}
}

// Total is the sum of all weights.
func (w RarityWeights) Total() float64 {
	var t float64
	for _, v := range w.values() {
		t += v
	}
	return t
}

// Probability returns the normalised chance of r.
func (w RarityWeights) Probability(r item.Rarity) float64 {
	vals := w.values()
	if int(r) >= len(vals) || w.Total() == 0 {
		return 0
	}
	return vals[r] / w.Total()
}

// Validate rejects negative or non-finite weights and a table whose total is
// zero or overflows.
func (w RarityWeights) Validate() error {
	for i, v := range w.values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s weight %g is not finite", ErrInvalidWeights, item.Rarities[i], v)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s weight %g is negative", ErrInvalidWeights, item.Rarities[i], v)
		}
	}
	if total := w.Total(); total <= 0 || math.IsInf(total, 0) {
		return fmt.Errorf("%w: total weight must be positive and finite", ErrInvalidWeights)
	}
	return nil
}

// SampleRarity maps u in [0, Total()) onto a tier by walking the cumulative
// boundaries in Common, Rare, Legendary, Unique order. Each bucket covers
// [lo, hi), so zero-weight tiers are never returned. Out-of-range u is
// clamped to the first or last non-empty bucket.
func (w RarityWeights) SampleRarity(u float64) item.Rarity {
	vals := w.values()
	last := item.RarityCommon
	var cum float64
	for i, v := range vals {
		if v <= 0 {
			continue
		}
		last = item.Rarities[i]
		cum += v
		if u < cum {
			return last
		}
	}
	return last
}

// Sample draws a tier from src.
func (w RarityWeights) Sample(src item.Source) item.Rarity {
	return w.SampleRarity(src.Float64() * w.Total())
}

func (w RarityWeights) String() string {
	vals := w.values()
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// ParseWeights reads "common,rare,legendary,unique", e.g. "70,20,8,2".
func ParseWeights(s string) (RarityWeights, error) {
	fields := strings.Split(s, ",")
	if len(fields) != len(item.Rarities) {
		return RarityWeights{}, fmt.Errorf("%w: want %d comma-separated values, got %q", ErrInvalidWeights, len(item.Rarities), s)
	}
	var vals [len(item.Rarities)]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return RarityWeights{}, fmt.Errorf("%w: %s: %v", ErrInvalidWeights, item.Rarities[i], err)
		}
		vals[i] = v
	}
	w := RarityWeights{Common: vals[0], Rare: vals[1], Legendary: vals[2], Unique: vals[3]}
	if err := w.Validate(); err != nil {
		return RarityWeights{}, err
	}
	return w, nil
}
