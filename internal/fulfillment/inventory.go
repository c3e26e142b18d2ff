package fulfillment

import (
	"context"
	"fmt"
	"log"

	"github.com/nestops/fulfillment-go/internal/models"
)

// InventoryService handles restock intake and inventory reads. Every
// restock is followed by a reconciliation pass so deferred orders get
// first crack at the new stock.
type InventoryService struct {
	store      Store
	reconciler *Reconciler
}

func NewInventoryService(store Store, reconciler *Reconciler) *InventoryService {
	return &InventoryService{
		store:      store,
		reconciler: reconciler,
	}
}

// ProcessRestock adds each delivered line to the ledger, then replays
// pending orders against the larger stock. Non-positive quantities are
// rejected before any line is applied, whichever boundary the restock
// came in through.
func (s *InventoryService) ProcessRestock(ctx context.Context, items []models.RestockItem) error {
	for _, item := range items {
		if item.Quantity <= 0 {
			return &ValidationError{
				Reason: fmt.Sprintf("restock quantity for product %d must be positive", item.ProductID),
			}
		}
	}

	for _, item := range items {
		if err := s.store.AddStock(ctx, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("restock product %d: %w", item.ProductID, err)
		}
		log.Printf("📦 Restocked product %d by %d unit(s)", item.ProductID, item.Quantity)
	}

	return s.reconciler.FulfillPendingOrders(ctx)
}

// GetQuantity returns the current available quantity of a product.
func (s *InventoryService) GetQuantity(ctx context.Context, productID int) (int, error) {
	return s.store.GetQuantity(ctx, productID)
}
