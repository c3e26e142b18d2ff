package fulfillment

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/nestops/fulfillment-go/internal/models"
)

// ReplayOrder decides which pending order is retried first during
// reconciliation. It reports whether a should be replayed before b.
type ReplayOrder func(a, b models.PendingOrder) bool

// ByOrderID replays pending orders in ascending order ID. This matches
// the historical behavior; it is not arrival-time FIFO.
func ByOrderID(a, b models.PendingOrder) bool {
	return a.OrderID < b.OrderID
}

// OldestFirst replays pending orders by when they were first deferred.
func OldestFirst(a, b models.PendingOrder) bool {
	return a.CreatedAt.Before(b.CreatedAt)
}

// Reconciler replays outstanding pending orders against the ledger
// after new stock arrives.
type Reconciler struct {
	store       Store
	dispatcher  *Dispatcher
	replayOrder ReplayOrder
}

func NewReconciler(store Store, dispatcher *Dispatcher, replayOrder ReplayOrder) *Reconciler {
	if replayOrder == nil {
		replayOrder = ByOrderID
	}
	return &Reconciler{
		store:       store,
		dispatcher:  dispatcher,
		replayOrder: replayOrder,
	}
}

// FulfillPendingOrders re-runs the allocation split for every pending
// order against its current remainder. Newly shippable quantity is
// dispatched; a pending record is rewritten to what still cannot ship
// and deleted once nothing remains. With no stock added since the last
// run this is a no-op, so back-to-back calls are safe.
//
// Each pending order is settled in its own transaction; a failure stops
// the run but leaves earlier orders fully settled.
func (r *Reconciler) FulfillPendingOrders(ctx context.Context) error {
	pending, err := r.store.GetPendingOrders(ctx)
	if err != nil {
		return fmt.Errorf("load pending orders: %w", err)
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return r.replayOrder(pending[i], pending[j])
	})

	for _, p := range pending {
		if err := r.fulfill(ctx, p); err != nil {
			return fmt.Errorf("reconcile order %d: %w", p.OrderID, err)
		}
	}

	return nil
}

func (r *Reconciler) fulfill(ctx context.Context, p models.PendingOrder) error {
	return r.store.WithinTx(ctx, func(tx Store) error {
		toShip, toDefer, err := allocate(ctx, tx, p.Requested)
		if err != nil {
			return err
		}

		if len(toShip) == 0 {
			// Nothing freed up for this order; leave the record as is.
			return nil
		}

		if err := r.dispatcher.ShipItems(ctx, p.OrderID, toShip); err != nil {
			return err
		}

		if len(toDefer) == 0 {
			log.Printf("✅ Order #%d fully fulfilled, pending record cleared", p.OrderID)
			return tx.RemovePendingOrder(ctx, p.OrderID)
		}

		log.Printf("📋 Order #%d partially fulfilled, %d line(s) still pending", p.OrderID, len(toDefer))
		return tx.UpdatePendingOrder(ctx, p.OrderID, toDefer)
	})
}
