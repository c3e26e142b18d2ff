package models

import "time"

// Order is an incoming request for products. The original request is
// persisted in full regardless of how much of it ships immediately.
type Order struct {
	OrderID   int         `json:"order_id"`
	Requested []OrderItem `json:"requested"`
}

// OrderItem is one requested product line.
type OrderItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// PendingOrder is the still-unfulfilled remainder of an order. Its item
// list is rewritten on partial reconciliation and the record is removed
// once everything has shipped. At most one exists per order ID.
type PendingOrder struct {
	OrderID   int         `json:"order_id"`
	Requested []OrderItem `json:"requested"`
	CreatedAt time.Time   `json:"created_at,omitzero"`
}

// RestockItem is one product line in a restock delivery.
type RestockItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}
