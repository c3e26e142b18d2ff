package fulfillment

import (
	"context"

	"github.com/nestops/fulfillment-go/internal/models"
)

// Ledger is the live record of per-product available quantity.
type Ledger interface {
	// GetQuantity returns the current quantity, or ErrProductNotFound
	// if the product was never registered.
	GetQuantity(ctx context.Context, productID int) (int, error)

	// AddStock increments quantity with no upper bound.
	AddStock(ctx context.Context, productID, qty int) error

	// RemoveStock decrements quantity only if at least qty units are
	// available, atomically; otherwise ErrInsufficientStock and no
	// change. The quantity never goes negative.
	RemoveStock(ctx context.Context, productID, qty int) error
}

// OrderStore persists orders and their pending remainders.
type OrderStore interface {
	InsertOrder(ctx context.Context, order models.Order) error
	InsertPendingOrder(ctx context.Context, pending models.PendingOrder) error
	GetPendingOrders(ctx context.Context) ([]models.PendingOrder, error)
	UpdatePendingOrder(ctx context.Context, orderID int, remaining []models.OrderItem) error
	RemovePendingOrder(ctx context.Context, orderID int) error
}

// Store is the persistence boundary for allocation. WithinTx runs fn
// against a transactional view; if fn returns an error every ledger and
// order mutation made through that view is rolled back.
type Store interface {
	Ledger
	OrderStore
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}

// ProductSource resolves catalog products for the package splitter's
// mass lookup. A nil product with a nil error means the product is not
// in the catalog.
type ProductSource interface {
	GetProduct(ctx context.Context, productID int) (*models.Product, error)
}

// ShipmentSink accepts emitted shipments for external handling. The
// sink is fire-and-forget: an accepted shipment is never recalled.
type ShipmentSink interface {
	Ship(ctx context.Context, shipment models.Shipment) error
}
