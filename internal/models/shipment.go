package models

// ShipmentItem is one product line inside a package.
type ShipmentItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Package is an ordered group of shipment items bounded by the package
// mass limit. A single product's quantity may be spread across packages.
type Package []ShipmentItem

// Shipment is what gets handed to the external shipper: one per package.
type Shipment struct {
	OrderID int            `json:"order_id"`
	Shipped []ShipmentItem `json:"shipped"`
}
