package inventory

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"emoji-arpg/internal/component"
	"emoji-arpg/internal/ecs"
	"emoji-arpg/internal/item"
	mockinventory "emoji-arpg/internal/inventory/mock"
	"emoji-arpg/internal/metrics"
)

func newInv(t *testing.T, opts ...Option) *Inventory {
	t.Helper()
	opts = append([]Option{WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	inv, err := New(opts...)
	require.NoError(t, err)
	return inv
}

func newItem(name string, typ item.Type) *item.Item {
	return &item.Item{ID: uuid.New(), Name: name, Type: typ, MaxStackSize: 1, Quantity: 1}
}

func potion(qty int) *item.Item {
	return &item.Item{ID: uuid.New(), Name: "Health Potion", Type: item.TypeConsumable, Stackable: true, MaxStackSize: 10, Quantity: qty}
}

func fill(t *testing.T, inv *Inventory, n int) []*item.Item {
	t.Helper()
	var out []*item.Item
	for i := 0; i < n; i++ {
		it := newItem(fmt.Sprintf("Junk %d", i), item.TypeArmor)
		require.True(t, inv.AddItem(it))
		out = append(out, it)
	}
	return out
}

func TestNewValidation(t *testing.T) {
	inv := newInv(t)
	assert.Equal(t, DefaultSize, inv.Size())
	assert.Equal(t, DefaultEquipSlots, inv.EquipSlotCount())

	_, err := New(WithSize(0))
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = New(WithEquipSlots(3))
	assert.ErrorIs(t, err, ErrInvalidSize)

	small := newInv(t, WithSize(3), WithEquipSlots(4))
	assert.Equal(t, 3, small.Size())
	assert.Equal(t, 4, small.EquipSlotCount())
}

func TestAddTwentyThenFull(t *testing.T) {
	inv := newInv(t)
	fill(t, inv, 20)
	assert.True(t, inv.IsFull())

	extra := newItem("One Too Many", item.TypeArmor)
	assert.False(t, inv.AddItem(extra))
	assert.Equal(t, 20, inv.GetItemCount())
	assert.False(t, inv.HasItem(extra))
}

func TestAddThenHas(t *testing.T) {
	inv := newInv(t)
	fill(t, inv, 5)
	before := inv.GetItemCount()

	it := newItem("Sword", item.TypeWeapon)
	require.True(t, inv.AddItem(it))
	assert.True(t, inv.HasItem(it))
	assert.Equal(t, before+1, inv.GetItemCount())
	assert.Equal(t, 5, inv.IndexOf(it), "first empty slot in index order")
}

func TestAddFillsFirstGap(t *testing.T) {
	inv := newInv(t)
	items := fill(t, inv, 4)
	require.True(t, inv.RemoveItem(items[1]))

	it := newItem("Ring", item.TypeAccessory)
	require.True(t, inv.AddItem(it))
	assert.Equal(t, 1, inv.IndexOf(it))
}

func TestAddRejectsNilAndHeldItems(t *testing.T) {
	inv := newInv(t)
	assert.False(t, inv.AddItem(nil))

	it := newItem("Sword", item.TypeWeapon)
	require.True(t, inv.AddItem(it))
	assert.False(t, inv.AddItem(it), "same instance twice")

	require.True(t, inv.EquipItem(it))
	assert.False(t, inv.AddItem(it), "already equipped")
	assert.Equal(t, 0, inv.GetItemCount())
}

func TestRemoveRoundTrip(t *testing.T) {
	inv := newInv(t)
	fill(t, inv, 3)
	it := newItem("Sword", item.TypeWeapon)
	require.True(t, inv.AddItem(it))
	slot := inv.IndexOf(it)

	require.True(t, inv.RemoveItem(it))
	assert.False(t, inv.HasItem(it))
	assert.Nil(t, inv.GetItemAt(slot))
	assert.Equal(t, 3, inv.GetItemCount())

	assert.False(t, inv.RemoveItem(it), "second remove")
}

func TestRemoveIsByIdentity(t *testing.T) {
	inv := newInv(t)
	a := newItem("Sword", item.TypeWeapon)
	b := a.Clone()
	require.True(t, inv.AddItem(a))

	assert.False(t, inv.RemoveItem(b), "equal name is not the same instance")
	assert.True(t, inv.HasItem(a))
}

func TestStackMerging(t *testing.T) {
	inv := newInv(t)
	first := potion(5)
	require.True(t, inv.AddItem(first))

	more := potion(3)
	require.True(t, inv.AddItem(more))
	assert.Equal(t, 8, first.Quantity)
	assert.False(t, inv.HasItem(more), "absorbed into the existing stack")
	assert.Equal(t, 1, inv.GetItemCount())

	overflow := potion(4)
	require.True(t, inv.AddItem(overflow))
	assert.Equal(t, 10, first.Quantity)
	assert.Equal(t, 2, overflow.Quantity)
	assert.True(t, inv.HasItem(overflow))
	assert.Equal(t, 12, inv.QuantityOf("Health Potion"))
}

func TestStackSplitsAcrossSlots(t *testing.T) {
	inv := newInv(t)
	big := potion(25)
	require.True(t, inv.AddItem(big))

	assert.Equal(t, 3, inv.GetItemCount())
	assert.Equal(t, 25, inv.QuantityOf("Health Potion"))
	assert.Equal(t, 10, inv.GetItemAt(0).Quantity)
	assert.Same(t, big, inv.GetItemAt(0))
	assert.Equal(t, 10, inv.GetItemAt(1).Quantity)
	assert.Equal(t, 5, inv.GetItemAt(2).Quantity)
}

func TestStackAllOrNothing(t *testing.T) {
	inv := newInv(t, WithSize(2))
	first := potion(8)
	require.True(t, inv.AddItem(first))
	fill(t, inv, 1)

	assert.True(t, inv.AddItem(potion(2)), "fits in the existing stack")
	assert.Equal(t, 10, first.Quantity)

	big := potion(5)
	assert.False(t, inv.AddItem(big))
	assert.Equal(t, 10, first.Quantity, "no partial merge")
	assert.Equal(t, 5, big.Quantity)
}

func TestNonStackableNeverMerges(t *testing.T) {
	inv := newInv(t)
	a := newItem("Smoke Bomb", item.TypeConsumable)
	b := newItem("Smoke Bomb", item.TypeConsumable)
	require.True(t, inv.AddItem(a))
	require.True(t, inv.AddItem(b))
	assert.Equal(t, 2, inv.GetItemCount())
}

func TestEquipAutoSlots(t *testing.T) {
	tests := []struct {
		typ  item.Type
		slot int
	}{
		{item.TypeWeapon, SlotWeapon},
		{item.TypeArmor, SlotArmor},
		{item.TypeAccessory, SlotAccessoryA},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			inv := newInv(t)
			it := newItem("x", tt.typ)
			require.True(t, inv.AddItem(it))
			require.True(t, inv.EquipItem(it))

			assert.Same(t, it, inv.GetEquippedItemAt(tt.slot))
			assert.True(t, inv.IsEquipped(it))
			assert.False(t, inv.HasItem(it))
		})
	}
}

func TestEquipAccessoriesFillBThenReplaceA(t *testing.T) {
	inv := newInv(t)
	rings := make([]*item.Item, 3)
	for i := range rings {
		rings[i] = newItem(fmt.Sprintf("Ring %d", i), item.TypeAccessory)
		require.True(t, inv.AddItem(rings[i]))
	}

	require.True(t, inv.EquipItem(rings[0]))
	require.True(t, inv.EquipItem(rings[1]))
	assert.Same(t, rings[0], inv.GetEquippedItemAt(SlotAccessoryA))
	assert.Same(t, rings[1], inv.GetEquippedItemAt(SlotAccessoryB))

	require.True(t, inv.EquipItem(rings[2]))
	assert.Same(t, rings[2], inv.GetEquippedItemAt(SlotAccessoryA))
	assert.True(t, inv.HasItem(rings[0]), "replaced ring returns to the backpack")
}

func TestEquipSwapReturnsOccupant(t *testing.T) {
	inv := newInv(t)
	old := newItem("Old Axe", item.TypeWeapon)
	fresh := newItem("New Axe", item.TypeWeapon)
	require.True(t, inv.AddItem(old))
	require.True(t, inv.EquipItem(old))
	require.True(t, inv.AddItem(fresh))

	require.True(t, inv.EquipItem(fresh))
	assert.Same(t, fresh, inv.GetEquippedItemAt(SlotWeapon))
	assert.True(t, inv.HasItem(old))
	assert.False(t, inv.IsEquipped(old))
	assert.Equal(t, 1, inv.GetItemCount())
}

func TestEquipSwapWithFullBackpack(t *testing.T) {
	inv := newInv(t, WithSize(3))
	old := newItem("Old Axe", item.TypeWeapon)
	require.True(t, inv.AddItem(old))
	require.True(t, inv.EquipItem(old))

	fill(t, inv, 1)
	fresh := newItem("New Axe", item.TypeWeapon)
	require.True(t, inv.AddItem(fresh))
	fill(t, inv, 1)
	require.True(t, inv.IsFull())
	slot := inv.IndexOf(fresh)

	require.True(t, inv.EquipItem(fresh))
	assert.Same(t, old, inv.GetItemAt(slot), "occupant takes the vacated slot")
	assert.Same(t, fresh, inv.GetEquippedItemAt(SlotWeapon))
}

func TestEquipRejections(t *testing.T) {
	inv := newInv(t)
	sword := newItem("Sword", item.TypeWeapon)
	drink := newItem("Potion", item.TypeConsumable)
	stranger := newItem("Stranger's Axe", item.TypeWeapon)
	require.True(t, inv.AddItem(sword))
	require.True(t, inv.AddItem(drink))

	assert.False(t, inv.EquipItem(drink), "consumables are not equippable")
	assert.False(t, inv.EquipItem(stranger), "not owned")
	assert.False(t, inv.EquipItem(nil))
	assert.False(t, inv.EquipItemAt(sword, SlotArmor), "wrong slot for type")
	assert.False(t, inv.EquipItemAt(sword, SlotReserved), "reserved slot")
	assert.False(t, inv.EquipItemAt(sword, -1))
	assert.False(t, inv.EquipItemAt(sword, inv.EquipSlotCount()))
	assert.False(t, inv.EquipItemAt(drink, SlotWeapon))

	assert.True(t, inv.HasItem(sword), "failed equips leave the item in place")
	assert.Zero(t, inv.EquippedCount())
}

func TestEquipItemAtAccessorySlotB(t *testing.T) {
	inv := newInv(t)
	ring := newItem("Ring", item.TypeAccessory)
	require.True(t, inv.AddItem(ring))
	require.True(t, inv.EquipItemAt(ring, SlotAccessoryB))
	assert.Same(t, ring, inv.GetEquippedItemAt(SlotAccessoryB))
	assert.Nil(t, inv.GetEquippedItemAt(SlotAccessoryA))
}

func TestEquipUnequipRoundTrip(t *testing.T) {
	inv := newInv(t)
	fill(t, inv, 4)
	armor := newItem("Chainmail", item.TypeArmor)
	require.True(t, inv.AddItem(armor))
	total := inv.GetItemCount() + inv.EquippedCount()

	require.True(t, inv.EquipItem(armor))
	assert.Equal(t, total, inv.GetItemCount()+inv.EquippedCount())

	require.True(t, inv.UnequipItem(SlotArmor))
	assert.True(t, inv.HasItem(armor))
	assert.Nil(t, inv.GetEquippedItemAt(SlotArmor))
	assert.Equal(t, total, inv.GetItemCount()+inv.EquippedCount())
}

func TestUnequipFullBackpackKeepsItem(t *testing.T) {
	inv := newInv(t, WithSize(2))
	sword := newItem("Sword", item.TypeWeapon)
	require.True(t, inv.AddItem(sword))
	require.True(t, inv.EquipItem(sword))
	fill(t, inv, 2)

	assert.False(t, inv.UnequipItem(SlotWeapon))
	assert.Same(t, sword, inv.GetEquippedItemAt(SlotWeapon))
	assert.Equal(t, 2, inv.GetItemCount())
}

func TestUnequipInvalid(t *testing.T) {
	inv := newInv(t)
	assert.False(t, inv.UnequipItem(SlotWeapon), "empty slot")
	assert.False(t, inv.UnequipItem(-1))
	assert.False(t, inv.UnequipItem(99))
}

func TestQueriesOutOfRange(t *testing.T) {
	inv := newInv(t)
	assert.Nil(t, inv.GetItemAt(-1))
	assert.Nil(t, inv.GetItemAt(inv.Size()))
	assert.Nil(t, inv.GetEquippedItemAt(inv.EquipSlotCount()))
	assert.False(t, inv.HasItem(nil))
}

func TestItemsReturnsCopy(t *testing.T) {
	inv := newInv(t)
	it := newItem("Sword", item.TypeWeapon)
	require.True(t, inv.AddItem(it))

	items := inv.Items()
	items[0] = nil
	assert.Same(t, it, inv.GetItemAt(0))

	eq := inv.Equipped()
	assert.Len(t, eq, DefaultEquipSlots)
}

func TestDropHandsItemToSpawner(t *testing.T) {
	ctrl := gomock.NewController(t)
	spawner := mockinventory.NewMockSpawner(ctrl)
	feet := component.Position{X: 3, Y: 4}
	inv := newInv(t, WithSpawner(spawner), WithDropOrigin(func() component.Position { return feet }))

	sword := newItem("Sword", item.TypeWeapon)
	require.True(t, inv.AddItem(sword))

	spawner.EXPECT().CreateWorldPickup(sword, feet).Return(ecs.EntityID(7), nil)
	require.True(t, inv.DropItem(sword))
	assert.False(t, inv.HasItem(sword))
	assert.Zero(t, inv.GetItemCount())
}

func TestDropRestoresItemOnSpawnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	spawner := mockinventory.NewMockSpawner(ctrl)
	inv := newInv(t, WithSpawner(spawner))

	fill(t, inv, 2)
	sword := newItem("Sword", item.TypeWeapon)
	require.True(t, inv.AddItem(sword))
	fill(t, inv, 2)

	pos := component.Position{X: 1}
	spawner.EXPECT().
		CreateWorldPickup(sword, pos).
		DoAndReturn(func(it *item.Item, _ component.Position) (ecs.EntityID, error) {
			assert.False(t, inv.HasItem(it), "removed before the hand-off")
			return ecs.NilEntity, errors.New("world unavailable")
		})

	assert.False(t, inv.DropItemAt(sword, pos))
	assert.Equal(t, 2, inv.IndexOf(sword), "restored to the same slot")
	assert.Equal(t, 5, inv.GetItemCount())
}

func TestDropWithoutSpawnerFails(t *testing.T) {
	inv := newInv(t)
	sword := newItem("Sword", item.TypeWeapon)
	require.True(t, inv.AddItem(sword))

	assert.False(t, inv.DropItem(sword))
	assert.True(t, inv.HasItem(sword))
}

func TestDropUnownedFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	spawner := mockinventory.NewMockSpawner(ctrl)
	inv := newInv(t, WithSpawner(spawner))

	// No CreateWorldPickup expectation: the spawner must not be called.
	assert.False(t, inv.DropItem(newItem("Ghost", item.TypeWeapon)))
}

func TestDropEquippedComposesUnequipAndDrop(t *testing.T) {
	ctrl := gomock.NewController(t)
	spawner := mockinventory.NewMockSpawner(ctrl)
	inv := newInv(t, WithSpawner(spawner))

	armor := newItem("Chainmail", item.TypeArmor)
	require.True(t, inv.AddItem(armor))
	require.True(t, inv.EquipItem(armor))

	pos := component.Position{X: 2, Y: 2}
	spawner.EXPECT().CreateWorldPickup(armor, pos).Return(ecs.EntityID(1), nil)
	require.True(t, inv.DropEquipped(SlotArmor, pos))
	assert.False(t, inv.IsEquipped(armor))
	assert.False(t, inv.HasItem(armor))

	assert.False(t, inv.DropEquipped(SlotArmor, pos), "slot now empty")
	assert.False(t, inv.DropEquipped(42, pos))
}

func TestDropEquippedLeavesItemInBackpackOnSpawnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	spawner := mockinventory.NewMockSpawner(ctrl)
	inv := newInv(t, WithSpawner(spawner))

	sword := newItem("Sword", item.TypeWeapon)
	require.True(t, inv.AddItem(sword))
	require.True(t, inv.EquipItem(sword))

	spawner.EXPECT().CreateWorldPickup(sword, gomock.Any()).Return(ecs.NilEntity, errors.New("nope"))
	assert.False(t, inv.DropEquipped(SlotWeapon, component.Position{}))
	assert.True(t, inv.HasItem(sword))
	assert.False(t, inv.IsEquipped(sword))
}

// worldStub keeps dropped items so they can be reclaimed.
type worldStub struct {
	next    ecs.EntityID
	pickups map[ecs.EntityID]*item.Item
}

func (w *worldStub) CreateWorldPickup(it *item.Item, _ component.Position) (ecs.EntityID, error) {
	w.next++
	w.pickups[w.next] = it
	return w.next, nil
}

func TestDropAndReclaimNeverExceedsCapacity(t *testing.T) {
	world := &worldStub{pickups: make(map[ecs.EntityID]*item.Item)}
	inv := newInv(t, WithSize(4), WithSpawner(world))
	items := fill(t, inv, 4)

	require.True(t, inv.DropItem(items[2]))
	require.Len(t, world.pickups, 1)
	for id, it := range world.pickups {
		require.True(t, inv.AddItem(it))
		delete(world.pickups, id)
	}
	assert.Equal(t, 4, inv.GetItemCount())
	assert.False(t, inv.AddItem(newItem("Extra", item.TypeArmor)))
	assert.Equal(t, 4, inv.GetItemCount())
}

func TestNotifications(t *testing.T) {
	inv := newInv(t)
	var invN, equipN int
	cancelInv := inv.OnInventoryChanged(func() { invN++ })
	inv.OnEquipmentChanged(func() { equipN++ })

	sword := newItem("Sword", item.TypeWeapon)
	require.True(t, inv.AddItem(sword))
	assert.Equal(t, 1, invN)
	assert.Zero(t, equipN)

	require.True(t, inv.EquipItem(sword))
	assert.Equal(t, 2, invN)
	assert.Equal(t, 1, equipN)

	assert.False(t, inv.UnequipItem(SlotArmor))
	assert.False(t, inv.RemoveItem(sword))
	assert.Equal(t, 2, invN, "failures do not notify")
	assert.Equal(t, 1, equipN)

	cancelInv()
	require.True(t, inv.UnequipItem(SlotWeapon))
	assert.Equal(t, 2, invN, "cancelled handler")
	assert.Equal(t, 2, equipN)
}

func TestHandlersSeeCommittedState(t *testing.T) {
	inv := newInv(t)
	sword := newItem("Sword", item.TypeWeapon)
	require.True(t, inv.AddItem(sword))

	var sawEquipped, sawInBackpack bool
	inv.OnEquipmentChanged(func() {
		sawEquipped = inv.IsEquipped(sword)
		sawInBackpack = inv.HasItem(sword)
	})
	require.True(t, inv.EquipItem(sword))
	assert.True(t, sawEquipped)
	assert.False(t, sawInBackpack)
}

func TestHandlerMayCancelItself(t *testing.T) {
	inv := newInv(t)
	calls := 0
	var cancel func()
	cancel = inv.OnInventoryChanged(func() {
		calls++
		cancel()
	})
	inv.AddItem(newItem("a", item.TypeArmor))
	inv.AddItem(newItem("b", item.TypeArmor))
	assert.Equal(t, 1, calls)
}

func TestReentrantMutationRefused(t *testing.T) {
	inv := newInv(t)
	sneaky := newItem("Sneaky", item.TypeArmor)
	var nested bool
	inv.OnInventoryChanged(func() {
		nested = inv.AddItem(sneaky)
	})

	require.True(t, inv.AddItem(newItem("First", item.TypeArmor)))
	assert.False(t, nested)
	assert.False(t, inv.HasItem(sneaky))
	assert.Equal(t, 1, inv.GetItemCount())

	// The guard is released once handlers return.
	assert.True(t, inv.AddItem(newItem("Second", item.TypeArmor)))
}

func TestFailureSeverity(t *testing.T) {
	var buf bytes.Buffer
	inv := newInv(t, WithSize(1), WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	fill(t, inv, 1)

	tests := []struct {
		name  string
		call  func() bool
		level string
	}{
		{"full", func() bool { return inv.AddItem(newItem("x", item.TypeArmor)) }, "level=INFO"},
		{"not found", func() bool { return inv.RemoveItem(newItem("y", item.TypeArmor)) }, "level=WARN"},
		{"bad index", func() bool { return inv.UnequipItem(-3) }, "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			assert.False(t, tt.call())
			assert.Contains(t, buf.String(), tt.level)
		})
	}
}

func TestOperationMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	inv := newInv(t, WithSize(1), WithMetrics(metrics.New(reg)))

	inv.AddItem(newItem("a", item.TypeArmor))
	inv.AddItem(newItem("b", item.TypeArmor))

	n, err := testutil.GatherAndCount(reg, metrics.MetricNameInventoryOperations)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "ok and fail series for add")
}

var discardLogger = slog.New(slog.DiscardHandler)
