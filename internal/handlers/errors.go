package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nestops/fulfillment-go/internal/fulfillment"
)

// respondError maps core errors onto HTTP statuses: missing records
// are 404, boundary rejections 400, a refused dispatch 502, anything
// else 500.
func respondError(c *gin.Context, err error) {
	var validationErr *fulfillment.ValidationError
	var dispatchErr *fulfillment.DispatchError

	switch {
	case errors.Is(err, fulfillment.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &dispatchErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": dispatchErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
