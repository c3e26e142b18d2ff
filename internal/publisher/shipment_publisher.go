package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/nestops/fulfillment-go/internal/messaging"
	"github.com/nestops/fulfillment-go/internal/models"
)

const ShipmentCreatedQueue = "shipment.created"

// ShipmentPublisher hands emitted shipments to RabbitMQ, one message
// per package, for downstream carrier handling.
type ShipmentPublisher struct {
	mq *messaging.RabbitMQ
}

func NewShipmentPublisher(mq *messaging.RabbitMQ) (*ShipmentPublisher, error) {
	if err := mq.DeclareQueue(ShipmentCreatedQueue); err != nil {
		return nil, err
	}

	return &ShipmentPublisher{mq: mq}, nil
}

// Ship publishes a shipment.created event.
func (p *ShipmentPublisher) Ship(ctx context.Context, shipment models.Shipment) error {
	event := models.ShipmentCreatedEvent{
		OrderID: shipment.OrderID,
		Shipped: shipment.Shipped,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal shipment: %w", err)
	}

	if err := p.mq.Publish(ctx, ShipmentCreatedQueue, data); err != nil {
		return err
	}

	log.Printf("📤 Published shipment for Order #%d (%d item line(s))", shipment.OrderID, len(shipment.Shipped))
	return nil
}
