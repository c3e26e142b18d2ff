package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nestops/fulfillment-go/internal/fulfillment"
	"github.com/nestops/fulfillment-go/internal/models"
)

// OrderProcessor runs the ship-now/defer split for an incoming order.
type OrderProcessor interface {
	ProcessOrder(ctx context.Context, order models.Order) error
}

type OrderHandler struct {
	allocator OrderProcessor
}

func NewOrderHandler(allocator OrderProcessor) *OrderHandler {
	return &OrderHandler{allocator: allocator}
}

// HealthCheck returns server status
func (h *OrderHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "fulfillment-service"})
}

// CreateOrder validates and processes an incoming order.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateOrder(order); err != nil {
		respondError(c, err)
		return
	}

	if err := h.allocator.ProcessOrder(c.Request.Context(), order); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order processed", "order_id": order.OrderID})
}

// validateOrder rejects malformed orders before they reach the
// allocator. An empty requested list is legal; zero or negative line
// quantities are not. Product ID 0 is a valid ID, so binding tags
// can't express these rules.
func validateOrder(order models.Order) error {
	if order.OrderID < 0 {
		return &fulfillment.ValidationError{Reason: "order_id must not be negative"}
	}
	if order.Requested == nil {
		return &fulfillment.ValidationError{Reason: "requested items are missing"}
	}

	seen := make(map[int]bool, len(order.Requested))
	for _, item := range order.Requested {
		if item.Quantity <= 0 {
			return &fulfillment.ValidationError{
				Reason: fmt.Sprintf("quantity for product %d must be positive", item.ProductID),
			}
		}
		if seen[item.ProductID] {
			return &fulfillment.ValidationError{
				Reason: fmt.Sprintf("product %d requested more than once", item.ProductID),
			}
		}
		seen[item.ProductID] = true
	}

	return nil
}
