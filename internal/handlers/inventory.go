package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nestops/fulfillment-go/internal/fulfillment"
	"github.com/nestops/fulfillment-go/internal/models"
)

// Restocker adds delivered stock and replays pending orders.
type Restocker interface {
	ProcessRestock(ctx context.Context, items []models.RestockItem) error
	GetQuantity(ctx context.Context, productID int) (int, error)
}

type InventoryHandler struct {
	inventory Restocker
}

func NewInventoryHandler(inventory Restocker) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// Restock accepts a list of delivered product lines, adds them to the
// ledger and triggers reconciliation of pending orders.
func (h *InventoryHandler) Restock(c *gin.Context) {
	var items []models.RestockItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			respondError(c, &fulfillment.ValidationError{
				Reason: fmt.Sprintf("restock quantity for product %d must be positive", item.ProductID),
			})
			return
		}
	}

	if err := h.inventory.ProcessRestock(c.Request.Context(), items); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "restocked", "items": len(items)})
}

// GetQuantity returns the available quantity of one product.
func (h *InventoryHandler) GetQuantity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	quantity, err := h.inventory.GetQuantity(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product_id": id, "quantity": quantity})
}
