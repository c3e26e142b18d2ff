package models

// RestockRequestedEvent arrives on the restock.requested queue when a
// resupply lands. Same semantics as POST /inventory/restock.
type RestockRequestedEvent struct {
	Items []RestockItem `json:"items"`
}

// ShipmentCreatedEvent is published to shipment.created, one message
// per emitted package.
type ShipmentCreatedEvent struct {
	OrderID int            `json:"order_id"`
	Shipped []ShipmentItem `json:"shipped"`
}
