package game

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"emoji-arpg/assets"
	"emoji-arpg/internal/component"
	"emoji-arpg/internal/config"
	"emoji-arpg/internal/ecs"
	"emoji-arpg/internal/factory"
	"emoji-arpg/internal/inventory"
	"emoji-arpg/internal/item"
	"emoji-arpg/internal/itemdb"
	"emoji-arpg/internal/metrics"
	"emoji-arpg/internal/render"
	"emoji-arpg/internal/system"

	"github.com/gdamore/tcell/v2"
)

// Arena size in world cells.
const (
	ArenaWidth  = 32
	ArenaHeight = 16
)

// StartingLoot is the number of pickups scattered over the arena on start.
const StartingLoot = 6

const maxMessages = 50

// Game owns every service of one play session. Nothing in it is shared
// with other sessions.
type Game struct {
	cfg     *config.Config
	screen  tcell.Screen
	logger  *slog.Logger
	metrics *metrics.Metrics
	rng     *rand.Rand

	db       *itemdb.Database
	world    *ecs.World
	pickups  *factory.Pickups
	inv      *inventory.Inventory
	renderer *render.Renderer
	panel    *render.Panel

	bounds   system.Bounds
	playerID ecs.EntityID
	focus    render.Focus
	cursor   int
	messages []string
	dirty    bool
	quit     bool

	session  SessionLog
	unsub    []func()
	logDir   string
	saveLogs bool
}

// Option configures a Game.
type Option func(*Game)

func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Game) { g.metrics = m }
}

// WithSessionName labels the session summary written on exit.
func WithSessionName(name string) Option {
	return func(g *Game) { g.session.Session = name }
}

// WithSessionLogDir overrides where the session summary is appended.
// An empty dir disables the summary.
func WithSessionLogDir(dir string) Option {
	return func(g *Game) {
		g.logDir = dir
		g.saveLogs = dir != ""
	}
}

// New builds a Game drawing to screen. The screen must already be
// initialised; the caller remains responsible for Fini.
func New(cfg *config.Config, screen tcell.Screen, opts ...Option) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		screen:   screen,
		logger:   slog.Default(),
		saveLogs: true,
		bounds: system.Bounds{
			Max: component.Position{X: ArenaWidth - 1, Y: ArenaHeight - 1},
		},
		session: newSessionLog(time.Now()),
	}
	for _, opt := range opts {
		opt(g)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	g.rng = item.NewSource(seed)

	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		return nil, err
	}
	g.db, err = itemdb.New(templates,
		itemdb.WithWeights(cfg.RarityWeights),
		itemdb.WithSource(g.rng),
		itemdb.WithLogger(g.logger),
		itemdb.WithMetrics(g.metrics))
	if err != nil {
		return nil, fmt.Errorf("item database: %w", err)
	}

	g.world = ecs.NewWorld()
	g.playerID = factory.NewPlayer(g.world, component.Position{X: ArenaWidth / 2, Y: ArenaHeight / 2})
	g.pickups = factory.NewPickups(g.world,
		factory.WithLifetime(cfg.PickupLifetime),
		factory.WithClaimGrace(cfg.PickupGrace),
		factory.WithLogger(g.logger),
		factory.WithMetrics(g.metrics))

	g.inv, err = inventory.New(
		inventory.WithSize(cfg.InventorySize),
		inventory.WithEquipSlots(cfg.EquipSlots),
		inventory.WithSpawner(g.pickups),
		inventory.WithDropOrigin(g.playerPosition),
		inventory.WithLogger(g.logger),
		inventory.WithMetrics(g.metrics))
	if err != nil {
		return nil, fmt.Errorf("inventory: %w", err)
	}
	g.unsub = append(g.unsub,
		g.inv.OnInventoryChanged(g.markDirty),
		g.inv.OnEquipmentChanged(g.markDirty))

	g.layout()
	g.scatterLoot(StartingLoot)
	g.addMessage("Move with hjkl or arrows. g: roll loot, ,: pick up, e: equip, d: drop, tab: switch list.")
	g.logger.Info("game ready", "seed", seed, "templates", g.db.Len())
	return g, nil
}

func loadTemplates(path string) ([]*item.Item, error) {
	if path == "" {
		return itemdb.LoadTemplates(bytes.NewReader(assets.Templates))
	}
	return itemdb.LoadTemplatesFile(path)
}

// layout sizes the arena view and panel to the current screen.
func (g *Game) layout() {
	w, _ := g.screen.Size()
	panelW := min(render.PanelWidth, w/2)
	panelX := w - panelW
	g.renderer = render.NewRenderer(g.screen, g.bounds, panelX-1)
	g.panel = render.NewPanel(g.screen, panelX, panelW)
	g.dirty = true
}

// scatterLoot drops n rolled items at random arena cells.
func (g *Game) scatterLoot(n int) {
	for range n {
		pos := component.Position{
			X: float64(g.rng.IntN(ArenaWidth)),
			Y: float64(g.rng.IntN(ArenaHeight)),
		}
		it := g.rollLoot()
		if _, err := g.pickups.CreateWorldPickup(it, pos); err != nil {
			g.logger.Error("failed to scatter loot", "item", it.Name, "error", err)
		}
	}
}

// Tick advances world timers by dt.
func (g *Game) Tick(dt time.Duration) {
	if system.TickTimers(g.world, dt) > 0 {
		g.dirty = true
	}
	g.clampCursor()
}

// Run drives the session until the player quits or ctx is cancelled, then
// writes the session summary.
func (g *Game) Run(ctx context.Context) {
	defer g.Close()

	eventCh := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			select {
			case eventCh <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(g.cfg.Tick)
	defer ticker.Stop()
	last := time.Now()

	g.Draw()
	for !g.quit {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-eventCh:
			if !ok {
				return // screen closed / disconnected
			}
			g.HandleEvent(ev)
		case now := <-ticker.C:
			g.Tick(now.Sub(last))
			last = now
		}
		if g.dirty {
			g.Draw()
		}
	}
}

// HandleEvent applies one terminal event.
func (g *Game) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.layout()
	case *tcell.EventKey:
		g.Do(keyToAction(ev))
	}
}

// Draw renders the full frame from current state.
func (g *Game) Draw() {
	pos := g.playerPosition()
	g.renderer.CenterOn(pos)
	g.renderer.DrawFrame(g.world)
	g.panel.Draw(render.PanelState{
		Inventory: g.inv,
		Nearby:    g.nearbyItems(),
		Focus:     g.focus,
		Cursor:    g.cursor,
	})
	g.renderer.DrawHUD(g.statusLine(), g.messages)
	g.screen.Show()
	g.dirty = false
}

func (g *Game) statusLine() string {
	x, y := g.playerPosition().Cell()
	status := fmt.Sprintf("(%d,%d) ground:%d", x, y, g.pickups.Count())
	if sel := g.selected(); sel != nil {
		status += "  " + strings.Join(render.Detail(sel), "  ")
	}
	return status
}

// Close releases subscriptions, clears the world's pickups and appends the
// session summary. Calling it again is a no-op.
func (g *Game) Close() {
	for _, cancel := range g.unsub {
		cancel()
	}
	g.unsub = nil
	if n := g.pickups.Clear(); n > 0 {
		g.logger.Debug("cleared pickups", "count", n)
	}
	if !g.saveLogs {
		return
	}
	g.session.finish(time.Now())
	if err := saveSessionLog(g.logDir, g.session); err != nil {
		g.logger.Warn("failed to save session log", "error", err)
	}
	g.saveLogs = false
}

func (g *Game) markDirty() { g.dirty = true }

func (g *Game) playerPosition() component.Position {
	c := g.world.Get(g.playerID, component.CPosition)
	if c == nil {
		return component.Position{}
	}
	return c.(component.Position)
}

func (g *Game) nearbyItems() []*item.Item {
	var out []*item.Item
	for _, id := range g.pickups.Near(g.playerPosition(), g.cfg.PickupRadius) {
		if it, ok := g.pickups.ItemAt(id); ok {
			out = append(out, it)
		}
	}
	return out
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
	g.dirty = true
}
