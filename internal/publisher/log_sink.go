package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/nestops/fulfillment-go/internal/models"
)

// LogSink prints shipments to the console instead of queuing them.
// Useful for local runs without RabbitMQ.
type LogSink struct{}

// Ship writes the shipment as a single log line.
func (LogSink) Ship(_ context.Context, shipment models.Shipment) error {
	data, err := json.Marshal(shipment)
	if err != nil {
		return fmt.Errorf("failed to marshal shipment: %w", err)
	}

	log.Printf("SHIPMENT: %s", data)
	return nil
}
