package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nestops/fulfillment-go/internal/fulfillment"
	"github.com/nestops/fulfillment-go/internal/models"
)

const RestockRequestedQueue = "restock.requested"

// RestockProcessor adds delivered stock and replays pending orders.
type RestockProcessor interface {
	ProcessRestock(ctx context.Context, items []models.RestockItem) error
}

// RestockConsumer feeds restock.requested events into the inventory
// service, which adds the stock and replays pending orders.
type RestockConsumer struct {
	inventory RestockProcessor
}

func NewRestockConsumer(inventory RestockProcessor) *RestockConsumer {
	return &RestockConsumer{inventory: inventory}
}

// ProcessRestockRequests handles restock.requested deliveries until
// the channel closes. Malformed payloads are dropped; processing
// failures are requeued for retry.
func (c *RestockConsumer) ProcessRestockRequests(ctx context.Context, messages <-chan amqp.Delivery) {
	for msg := range messages {
		var event models.RestockRequestedEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			log.Printf("❌ Failed to parse restock event: %v", err)
			msg.Nack(false, false) // Don't requeue bad messages
			continue
		}

		if len(event.Items) == 0 {
			log.Printf("⚠️ Empty restock event, dropping")
			msg.Nack(false, false)
			continue
		}

		log.Printf("📥 Received restock for %d product(s)", len(event.Items))

		if err := c.inventory.ProcessRestock(ctx, event.Items); err != nil {
			var validationErr *fulfillment.ValidationError
			if errors.As(err, &validationErr) {
				// A bad payload never gets better; requeueing it
				// would poison the queue.
				log.Printf("❌ Rejected restock event: %v", err)
				msg.Nack(false, false)
				continue
			}
			log.Printf("❌ Failed to process restock: %v", err)
			msg.Nack(false, true) // Requeue for retry
			continue
		}

		msg.Ack(false)
		log.Printf("✅ Restock processed")
	}
}
