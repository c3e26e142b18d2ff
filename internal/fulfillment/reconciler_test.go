package fulfillment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestops/fulfillment-go/internal/models"
)

func newReconcilerFixture(stock map[int]int, replay ReplayOrder) (*Reconciler, *memStore, *recordingSink) {
	store := newMemStore(stock)
	sink := newRecordingSink()
	dispatcher := NewDispatcher(testCatalog(), sink)
	return NewReconciler(store, dispatcher, replay), store, sink
}

func TestFulfillPendingOrdersAfterRestock(t *testing.T) {
	reconciler, store, sink := newReconcilerFixture(map[int]int{0: 5}, nil)
	store.pending = []models.PendingOrder{
		{OrderID: 7, Requested: []models.OrderItem{{ProductID: 0, Quantity: 3}}},
	}

	require.NoError(t, reconciler.FulfillPendingOrders(context.Background()))

	assert.Equal(t, 3, sink.shippedQty(7, 0))
	assert.Nil(t, store.pendingFor(7), "fully fulfilled order leaves no pending record")
	assert.Equal(t, 2, store.stock[0])
}

func TestFulfillPendingOrdersPartialRemainder(t *testing.T) {
	reconciler, store, sink := newReconcilerFixture(map[int]int{0: 2}, nil)
	store.pending = []models.PendingOrder{
		{OrderID: 42, Requested: []models.OrderItem{{ProductID: 0, Quantity: 3}}},
	}

	require.NoError(t, reconciler.FulfillPendingOrders(context.Background()))

	assert.Equal(t, 2, sink.shippedQty(42, 0))

	pending := store.pendingFor(42)
	require.NotNil(t, pending)
	assert.Equal(t, []models.OrderItem{{ProductID: 0, Quantity: 1}}, pending.Requested,
		"remainder is rewritten to exactly what could not ship")
	assert.Equal(t, 0, store.stock[0])
}

func TestFulfillPendingOrdersClearsFulfilledLines(t *testing.T) {
	reconciler, store, _ := newReconcilerFixture(map[int]int{0: 1, 10: 10}, nil)
	store.pending = []models.PendingOrder{
		{OrderID: 8, Requested: []models.OrderItem{
			{ProductID: 0, Quantity: 2},
			{ProductID: 10, Quantity: 4},
		}},
	}

	require.NoError(t, reconciler.FulfillPendingOrders(context.Background()))

	pending := store.pendingFor(8)
	require.NotNil(t, pending)

	// The cleared line (product 10) is dropped, not left at zero.
	assert.Equal(t, []models.OrderItem{{ProductID: 0, Quantity: 1}}, pending.Requested)
}

func TestFulfillPendingOrdersIdempotent(t *testing.T) {
	reconciler, store, sink := newReconcilerFixture(map[int]int{0: 2, 10: 0}, nil)
	store.pending = []models.PendingOrder{
		{OrderID: 1, Requested: []models.OrderItem{{ProductID: 0, Quantity: 5}}},
		{OrderID: 2, Requested: []models.OrderItem{{ProductID: 10, Quantity: 1}}},
	}

	require.NoError(t, reconciler.FulfillPendingOrders(context.Background()))

	shipmentsAfterFirst := len(sink.shipments)
	pendingAfterFirst := store.clone().pending

	// No restock in between: the second pass must change nothing.
	require.NoError(t, reconciler.FulfillPendingOrders(context.Background()))

	assert.Equal(t, shipmentsAfterFirst, len(sink.shipments))
	assert.Equal(t, pendingAfterFirst, store.pending)
}

func TestFulfillPendingOrdersReplayByOrderID(t *testing.T) {
	// One 40g unit, two orders that each want it: the lower order ID
	// wins under the default strategy.
	reconciler, store, sink := newReconcilerFixture(map[int]int{8: 1}, nil)
	store.pending = []models.PendingOrder{
		{OrderID: 20, Requested: []models.OrderItem{{ProductID: 8, Quantity: 1}}},
		{OrderID: 10, Requested: []models.OrderItem{{ProductID: 8, Quantity: 1}}},
	}

	require.NoError(t, reconciler.FulfillPendingOrders(context.Background()))

	assert.Equal(t, 1, sink.shippedQty(10, 8))
	assert.Equal(t, 0, sink.shippedQty(20, 8))
	assert.Nil(t, store.pendingFor(10))
	assert.NotNil(t, store.pendingFor(20))
}

func TestFulfillPendingOrdersReplayOldestFirst(t *testing.T) {
	reconciler, store, sink := newReconcilerFixture(map[int]int{8: 1}, OldestFirst)

	now := time.Now()
	store.pending = []models.PendingOrder{
		{OrderID: 10, Requested: []models.OrderItem{{ProductID: 8, Quantity: 1}}, CreatedAt: now},
		{OrderID: 20, Requested: []models.OrderItem{{ProductID: 8, Quantity: 1}}, CreatedAt: now.Add(-time.Hour)},
	}

	require.NoError(t, reconciler.FulfillPendingOrders(context.Background()))

	// Order 20 was deferred earlier, so it wins despite the higher ID.
	assert.Equal(t, 1, sink.shippedQty(20, 8))
	assert.Equal(t, 0, sink.shippedQty(10, 8))
}

func TestProcessRestockTriggersReconciliation(t *testing.T) {
	// Scenario: order defers entirely, then a restock makes it whole.
	store := newMemStore(map[int]int{0: 0})
	sink := newRecordingSink()
	dispatcher := NewDispatcher(testCatalog(), sink)
	allocator := NewAllocator(store, dispatcher)
	reconciler := NewReconciler(store, dispatcher, nil)
	inventory := NewInventoryService(store, reconciler)

	ctx := context.Background()
	order := models.Order{OrderID: 99, Requested: []models.OrderItem{{ProductID: 0, Quantity: 3}}}
	require.NoError(t, allocator.ProcessOrder(ctx, order))
	require.Empty(t, sink.shipments)

	require.NoError(t, inventory.ProcessRestock(ctx, []models.RestockItem{{ProductID: 0, Quantity: 5}}))

	assert.Equal(t, 3, sink.shippedQty(99, 0))
	assert.Nil(t, store.pendingFor(99))
	assert.Equal(t, 2, store.stock[0])
}

func TestProcessRestockRejectsNonPositiveQuantity(t *testing.T) {
	store := newMemStore(map[int]int{0: 5})
	sink := newRecordingSink()
	dispatcher := NewDispatcher(testCatalog(), sink)
	inventory := NewInventoryService(store, NewReconciler(store, dispatcher, nil))

	err := inventory.ProcessRestock(context.Background(), []models.RestockItem{
		{ProductID: 0, Quantity: -10},
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	// Nothing was applied: a negative delivery must never drain the
	// ledger below zero through the add path.
	assert.Equal(t, 5, store.stock[0])
	assert.Empty(t, sink.shipments)
}

func TestProcessRestockRejectsBadLineBeforeApplyingAny(t *testing.T) {
	store := newMemStore(map[int]int{0: 5, 10: 5})
	sink := newRecordingSink()
	dispatcher := NewDispatcher(testCatalog(), sink)
	inventory := NewInventoryService(store, NewReconciler(store, dispatcher, nil))

	err := inventory.ProcessRestock(context.Background(), []models.RestockItem{
		{ProductID: 0, Quantity: 3},
		{ProductID: 10, Quantity: 0},
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	// The valid first line is not applied either; the whole delivery
	// is rejected up front.
	assert.Equal(t, 5, store.stock[0])
	assert.Equal(t, 5, store.stock[10])
}

func TestFulfillPendingOrdersPartialKeepsDeferralAge(t *testing.T) {
	reconciler, store, sink := newReconcilerFixture(map[int]int{8: 1}, OldestFirst)

	now := time.Now()
	store.pending = []models.PendingOrder{
		{OrderID: 10, Requested: []models.OrderItem{{ProductID: 8, Quantity: 1}}, CreatedAt: now},
		{OrderID: 20, Requested: []models.OrderItem{{ProductID: 8, Quantity: 3}}, CreatedAt: now.Add(-time.Hour)},
	}

	// First pass: the older order 20 takes the only unit and is
	// rewritten to its remainder.
	require.NoError(t, reconciler.FulfillPendingOrders(context.Background()))
	require.Equal(t, 1, sink.shippedQty(20, 8))

	pending := store.pendingFor(20)
	require.NotNil(t, pending)
	assert.Equal(t, now.Add(-time.Hour), pending.CreatedAt,
		"partial reconciliation must not reset when the order was first deferred")

	// Second restock: order 20 must still outrank order 10.
	store.stock[8] = 1
	require.NoError(t, reconciler.FulfillPendingOrders(context.Background()))
	assert.Equal(t, 2, sink.shippedQty(20, 8))
	assert.Equal(t, 0, sink.shippedQty(10, 8))
}

func TestProcessRestockUnregisteredProduct(t *testing.T) {
	store := newMemStore(map[int]int{})
	sink := newRecordingSink()
	dispatcher := NewDispatcher(testCatalog(), sink)
	inventory := NewInventoryService(store, NewReconciler(store, dispatcher, nil))

	err := inventory.ProcessRestock(context.Background(), []models.RestockItem{{ProductID: 5, Quantity: 3}})
	require.ErrorIs(t, err, ErrProductNotFound)
}
