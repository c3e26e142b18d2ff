package models

import "time"

// Product is a catalog entry. Products are immutable once registered.
type Product struct {
	ProductID   int       `json:"product_id"`
	ProductName string    `json:"product_name"`
	MassG       int       `json:"mass_g"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// RegisterProductRequest is one entry in a catalog init payload.
// ProductID 0 is a valid ID, so presence is not expressible with a
// required tag; the handler checks for duplicates instead.
type RegisterProductRequest struct {
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name" binding:"required"`
	MassG       int    `json:"mass_g" binding:"required,gt=0"`
}
