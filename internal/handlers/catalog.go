package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nestops/fulfillment-go/internal/models"
)

// ProductStore is the catalog registry behind the handler.
type ProductStore interface {
	Insert(ctx context.Context, product models.Product) error
	GetByID(ctx context.Context, productID int) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
}

// InventoryInitializer zero-initializes a product's inventory record.
type InventoryInitializer interface {
	CreateInventoryItem(ctx context.Context, productID int) error
}

type CatalogHandler struct {
	products  ProductStore
	inventory InventoryInitializer
}

func NewCatalogHandler(products ProductStore, inventory InventoryInitializer) *CatalogHandler {
	return &CatalogHandler{
		products:  products,
		inventory: inventory,
	}
}

// HealthCheck returns server status
func (h *CatalogHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "catalog-service"})
}

// InitCatalog registers a batch of products and creates a zero-stock
// inventory record for each. Idempotent: re-posting the same products
// changes nothing.
func (h *CatalogHandler) InitCatalog(c *gin.Context) {
	var req []models.RegisterProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	for _, p := range req {
		product := models.Product{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			MassG:       p.MassG,
		}
		if err := h.products.Insert(ctx, product); err != nil {
			respondError(c, err)
			return
		}
		if err := h.inventory.CreateInventoryItem(ctx, p.ProductID); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "catalog initialized", "products": len(req)})
}

// GetProduct returns a single catalog product
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListProducts returns all catalog products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.products.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}
