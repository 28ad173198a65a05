package factory

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"emoji-arpg/assets"
	"emoji-arpg/internal/component"
	"emoji-arpg/internal/ecs"
	"emoji-arpg/internal/inventory"
	"emoji-arpg/internal/item"
	"emoji-arpg/internal/metrics"
	"emoji-arpg/internal/system"

	"github.com/gdamore/tcell/v2"
)

var (
	ErrNilItem    = errors.New("nil item")
	ErrNotAPickup = errors.New("entity is not a world pickup")
)

// Timer names used on pickup entities.
const (
	TimerClaimGrace = "claim-grace"
	TimerDespawn    = "despawn"
)

const (
	DefaultPickupLifetime = 2 * time.Minute
	DefaultClaimGrace     = 500 * time.Millisecond
)

// Pickups materialises item instances as world entities and hands them back
// when claimed. While an item lies in the world its pickup entity is the
// only owner.
type Pickups struct {
	w        *ecs.World
	lifetime time.Duration
	grace    time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

var (
	_ inventory.Spawner    = (*Pickups)(nil)
	_ system.PickupClaimer = (*Pickups)(nil)
)

// PickupOption configures Pickups.
type PickupOption func(*Pickups)

// WithLifetime sets how long an unclaimed pickup survives. Zero means forever.
func WithLifetime(d time.Duration) PickupOption {
	return func(p *Pickups) { p.lifetime = d }
}

// WithClaimGrace sets how long a fresh drop ignores proximity pickup.
func WithClaimGrace(d time.Duration) PickupOption {
	return func(p *Pickups) { p.grace = d }
}

func WithLogger(l *slog.Logger) PickupOption {
	return func(p *Pickups) { p.logger = l }
}

func WithMetrics(m *metrics.Metrics) PickupOption {
	return func(p *Pickups) { p.metrics = m }
}

// NewPickups creates the lifecycle service over w.
func NewPickups(w *ecs.World, opts ...PickupOption) *Pickups {
	p := &Pickups{
		w:        w,
		lifetime: DefaultPickupLifetime,
		grace:    DefaultClaimGrace,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CreateWorldPickup places it in the world at pos and returns the pickup's
// handle. The caller must no longer hold it.
func (p *Pickups) CreateWorldPickup(it *item.Item, pos component.Position) (ecs.EntityID, error) {
	if it == nil {
		return ecs.NilEntity, ErrNilItem
	}
	glyph := it.Icon
	if glyph == "" {
		glyph = assets.GlyphUnknown
	}

	id := p.w.CreateEntity()
	p.w.Add(id, pos)
	p.w.Add(id, component.Renderable{
		Glyph:       glyph,
		FGColor:     it.RarityColor(),
		BGColor:     tcell.ColorDefault,
		RenderOrder: component.OrderPickup,
	})
	p.w.Add(id, component.Pickup{Item: it, Claimable: p.grace <= 0})
	p.w.Add(id, component.TagPickup{})

	if p.grace > 0 {
		system.Schedule(p.w, id, TimerClaimGrace, p.grace, func() { p.markClaimable(id) })
	}
	if p.lifetime > 0 {
		system.Schedule(p.w, id, TimerDespawn, p.lifetime, func() { p.expire(id) })
	}

	p.metrics.PickupSpawned()
	p.logger.Debug("world pickup created",
		"entity", id,
		"item", it.Name,
		"x", pos.X,
		"y", pos.Y)
	return id, nil
}

// OnPickupClaimed removes the pickup and returns its item, regardless of the
// claim grace period.
func (p *Pickups) OnPickupClaimed(id ecs.EntityID) (*item.Item, bool) {
	pk, err := p.pickup(id)
	if err != nil {
		p.logger.Warn("claim of unknown pickup", "entity", id, "err", err)
		return nil, false
	}
	p.remove(id, metrics.ReasonClaimed)
	return pk.Item, true
}

// Claim offers the pickup's item to take and removes the pickup only when
// take accepts it. A refused item stays in the world untouched.
func (p *Pickups) Claim(id ecs.EntityID, take func(*item.Item) bool) bool {
	pk, err := p.pickup(id)
	if err != nil {
		p.logger.Warn("claim of unknown pickup", "entity", id, "err", err)
		return false
	}
	if !take(pk.Item) {
		p.logger.Info("pickup refused", "entity", id, "item", pk.Item.Name)
		return false
	}
	p.remove(id, metrics.ReasonClaimed)
	return true
}

// Claimable reports whether id is a pickup past its claim grace period.
func (p *Pickups) Claimable(id ecs.EntityID) bool {
	pk, err := p.pickup(id)
	return err == nil && pk.Claimable
}

// ItemAt returns the item lying at pickup id without claiming it.
func (p *Pickups) ItemAt(id ecs.EntityID) (*item.Item, bool) {
	pk, err := p.pickup(id)
	if err != nil {
		return nil, false
	}
	return pk.Item, true
}

// PositionOf returns where pickup id lies.
func (p *Pickups) PositionOf(id ecs.EntityID) (component.Position, bool) {
	if !p.w.Has(id, component.CTagPickup) {
		return component.Position{}, false
	}
	c := p.w.Get(id, component.CPosition)
	if c == nil {
		return component.Position{}, false
	}
	return c.(component.Position), true
}

// Near returns pickups within radius of pos, nearest first, ties broken by
// handle.
func (p *Pickups) Near(pos component.Position, radius float64) []ecs.EntityID {
	type hit struct {
		id   ecs.EntityID
		dist float64
	}
	var hits []hit
	for _, id := range p.w.Query(component.CTagPickup, component.CPosition) {
		d := p.w.Get(id, component.CPosition).(component.Position).DistanceTo(pos)
		if d <= radius {
			hits = append(hits, hit{id: id, dist: d})
		}
	}
	slices.SortFunc(hits, func(a, b hit) int {
		if c := cmp.Compare(a.dist, b.dist); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	ids := make([]ecs.EntityID, len(hits))
	for i, h := range hits {
		ids[i] = h.id
	}
	return ids
}

// All returns every live pickup in creation order.
func (p *Pickups) All() []ecs.EntityID {
	return p.w.Query(component.CTagPickup)
}

// Count is the number of pickups in the world.
func (p *Pickups) Count() int {
	return p.w.Count(component.CTagPickup)
}

// Clear destroys every remaining pickup and returns how many there were.
func (p *Pickups) Clear() int {
	ids := p.All()
	for _, id := range ids {
		p.remove(id, metrics.ReasonSessionEnd)
	}
	return len(ids)
}

func (p *Pickups) pickup(id ecs.EntityID) (component.Pickup, error) {
	if !p.w.Has(id, component.CTagPickup) {
		return component.Pickup{}, fmt.Errorf("%w: %d", ErrNotAPickup, id)
	}
	return p.w.Get(id, component.CPickup).(component.Pickup), nil
}

func (p *Pickups) markClaimable(id ecs.EntityID) {
	pk, err := p.pickup(id)
	if err != nil {
		return
	}
	pk.Claimable = true
	p.w.Add(id, pk)
}

// expire destroys an unclaimed pickup together with its item.
func (p *Pickups) expire(id ecs.EntityID) {
	pk, err := p.pickup(id)
	if err != nil {
		return
	}
	p.logger.Info("pickup despawned", "entity", id, "item", pk.Item.Name)
	p.remove(id, metrics.ReasonExpired)
}

func (p *Pickups) remove(id ecs.EntityID, reason string) {
	p.w.DestroyEntity(id)
	p.metrics.PickupRemoved(reason)
}
