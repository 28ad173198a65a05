// Package itemdb owns the authored item templates and is the single entry
// point for generated loot.
package itemdb

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"emoji-arpg/internal/item"
	"emoji-arpg/internal/metrics"
)

// ErrNoFallback is returned when the template set has no Axe to degrade to.
var ErrNoFallback = errors.New("template set has no Axe weapon template")

// Database is the template registry and loot front end.
type Database struct {
	templates   map[string]*item.Item
	order       []string
	weapons     map[item.WeaponType]*item.Item
	weaponKinds []item.WeaponType

	weights RarityWeights
	src     item.Source
	gen     *item.Generator
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Database.
type Option func(*Database)

// WithWeights replaces the default 70/20/8/2 table.
func WithWeights(w RarityWeights) Option {
	return func(db *Database) { db.weights = w }
}

// WithSource sets the randomness shared by rarity sampling and generation.
func WithSource(src item.Source) Option {
	return func(db *Database) { db.src = src }
}

func WithLogger(l *slog.Logger) Option {
	return func(db *Database) { db.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(db *Database) { db.metrics = m }
}

// New registers templates. Every template is cloned on the way in so callers
// cannot mutate the registry afterwards.
func New(templates []*item.Item, opts ...Option) (*Database, error) {
	db := &Database{
		templates: make(map[string]*item.Item, len(templates)),
		weapons:   make(map[item.WeaponType]*item.Item),
		weights:   DefaultWeights(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(db)
	}
	if db.src == nil {
		db.src = item.NewSource(uint64(time.Now().UnixNano()))
	}
	db.gen = item.NewGenerator(db.src)

	if err := db.weights.Validate(); err != nil {
		return nil, err
	}

	for _, tpl := range templates {
		if tpl == nil || tpl.Name == "" {
			return nil, fmt.Errorf("%w: nil or unnamed", ErrInvalidTemplate)
		}
		if _, dup := db.templates[tpl.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTemplate, tpl.Name)
		}
		c := tpl.Clone()
		db.templates[c.Name] = c
		db.order = append(db.order, c.Name)

		if c.Weapon == nil {
			continue
		}
		if _, dup := db.weapons[c.Weapon.Kind]; dup {
			return nil, fmt.Errorf("%w: second %s weapon template %q", ErrDuplicateTemplate, c.Weapon.Kind, c.Name)
		}
		db.weapons[c.Weapon.Kind] = c
		db.weaponKinds = append(db.weaponKinds, c.Weapon.Kind)
	}
	if _, ok := db.weapons[item.WeaponAxe]; !ok {
		return nil, ErrNoFallback
	}
	slices.Sort(db.weaponKinds)

	db.logger.Info("item database ready",
		"templates", len(db.templates),
		"weapon_templates", len(db.weapons),
		"weights", db.weights.String())
	return db, nil
}

// GenerateWeapon returns a fresh weapon of the given type and rarity. Types
// without a template degrade to the Axe template at the requested rarity, so
// the result is never nil.
func (db *Database) GenerateWeapon(kind item.WeaponType, rarity item.Rarity) *item.Item {
	tpl, ok := db.weapons[kind]
	if !ok {
		db.logger.Warn("no weapon template, falling back to Axe",
			"requested", kind.String(),
			"rarity", rarity.String())
		tpl = db.weapons[item.WeaponAxe]
	}

	it := tpl.Clone()
	db.gen.Apply(it, rarity)
	db.metrics.ItemGenerated(rarity.String())
	db.logger.Debug("weapon generated",
		"name", it.Name,
		"rarity", rarity.String(),
		"damage", it.Weapon.BaseDamage)
	return it
}

// GenerateRandomWeapon draws a rarity from the weight table and a weapon type
// uniformly from the registered weapon templates.
func (db *Database) GenerateRandomWeapon() *item.Item {
	rarity := db.weights.Sample(db.src)
	kind := db.weaponKinds[db.src.IntN(len(db.weaponKinds))]
	return db.GenerateWeapon(kind, rarity)
}

// GetItem returns a fresh instance of the named template.
func (db *Database) GetItem(name string) (*item.Item, bool) {
	tpl, ok := db.templates[name]
	if !ok {
		db.logger.Warn("item template not found", "name", name)
		return nil, false
	}
	return tpl.Clone(), true
}

// Templates returns instances of every template in registration order.
func (db *Database) Templates() []*item.Item {
	out := make([]*item.Item, 0, len(db.order))
	for _, name := range db.order {
		out = append(out, db.templates[name].Clone())
	}
	return out
}

// Len reports the number of registered templates.
func (db *Database) Len() int { return len(db.templates) }

// Weights returns the active rarity table.
func (db *Database) Weights() RarityWeights { return db.weights }
