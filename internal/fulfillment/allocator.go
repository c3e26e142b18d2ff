package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nestops/fulfillment-go/internal/models"
)

// Allocator decides, per incoming order, how much of each requested
// line ships now and how much is deferred until restock.
type Allocator struct {
	store      Store
	dispatcher *Dispatcher
}

func NewAllocator(store Store, dispatcher *Dispatcher) *Allocator {
	return &Allocator{
		store:      store,
		dispatcher: dispatcher,
	}
}

// ProcessOrder walks the requested lines in order, reserves
// min(requested, available) of each from the ledger, persists the full
// original order, dispatches the shippable portion and records any
// remainder as a pending order. The whole effect is applied under one
// transaction: a failed dispatch or write leaves the ledger untouched.
func (a *Allocator) ProcessOrder(ctx context.Context, order models.Order) error {
	return a.store.WithinTx(ctx, func(tx Store) error {
		toShip, toDefer, err := allocate(ctx, tx, order.Requested)
		if err != nil {
			return fmt.Errorf("allocate order %d: %w", order.OrderID, err)
		}

		if err := tx.InsertOrder(ctx, order); err != nil {
			return fmt.Errorf("persist order %d: %w", order.OrderID, err)
		}

		if len(toShip) > 0 {
			if err := a.dispatcher.ShipItems(ctx, order.OrderID, toShip); err != nil {
				return err
			}
		}

		if len(toDefer) > 0 {
			pending := models.PendingOrder{OrderID: order.OrderID, Requested: toDefer}
			if err := tx.InsertPendingOrder(ctx, pending); err != nil {
				return fmt.Errorf("record pending order %d: %w", order.OrderID, err)
			}
			log.Printf("📋 Order #%d: %d line(s) deferred until restock", order.OrderID, len(toDefer))
		}

		return nil
	})
}

// allocate computes the ship-now / defer-later split for requested
// lines against the ledger, decrementing stock as it goes. Lines are
// independent: one line's shortfall never blocks a fully stocked
// sibling. A missing inventory record aborts the allocation.
func allocate(ctx context.Context, ledger Ledger, requested []models.OrderItem) (toShip []models.ShipmentItem, toDefer []models.OrderItem, err error) {
	for _, item := range requested {
		shipQty, err := reserve(ctx, ledger, item.ProductID, item.Quantity)
		if err != nil {
			return nil, nil, err
		}

		if shipQty > 0 {
			toShip = append(toShip, models.ShipmentItem{ProductID: item.ProductID, Quantity: shipQty})
		}
		if deferQty := item.Quantity - shipQty; deferQty > 0 {
			toDefer = append(toDefer, models.OrderItem{ProductID: item.ProductID, Quantity: deferQty})
		}
	}

	return toShip, toDefer, nil
}

// reserve removes up to want units of a product from the ledger and
// returns how many it got. The read only bounds the request; the
// conditional decrement is what actually guards against going
// negative, so a decrement that loses a race to a concurrent order is
// retried once against the re-read quantity.
func reserve(ctx context.Context, ledger Ledger, productID, want int) (int, error) {
	for attempt := 0; attempt < 2; attempt++ {
		avail, err := ledger.GetQuantity(ctx, productID)
		if err != nil {
			return 0, fmt.Errorf("read stock for product %d: %w", productID, err)
		}

		qty := min(want, avail)
		if qty == 0 {
			return 0, nil
		}

		err = ledger.RemoveStock(ctx, productID, qty)
		if err == nil {
			return qty, nil
		}
		if !errors.Is(err, ErrInsufficientStock) {
			return 0, fmt.Errorf("remove stock for product %d: %w", productID, err)
		}
	}

	return 0, nil
}
