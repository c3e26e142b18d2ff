package fulfillment

import (
	"context"
	"log"

	"github.com/nestops/fulfillment-go/internal/models"
)

// Dispatcher turns an approved shipment list into mass-bounded packages
// and emits one shipment per package to the sink.
type Dispatcher struct {
	products ProductSource
	sink     ShipmentSink
}

func NewDispatcher(products ProductSource, sink ShipmentSink) *Dispatcher {
	return &Dispatcher{
		products: products,
		sink:     sink,
	}
}

// ShipItems splits items into packages and ships each one, in the
// order the packages were filled. A sink refusal surfaces as a
// *DispatchError naming the failed package; earlier packages in the
// same call have already been accepted.
func (d *Dispatcher) ShipItems(ctx context.Context, orderID int, items []models.ShipmentItem) error {
	packages, dropped, err := SplitIntoPackages(ctx, items, d.products)
	if err != nil {
		return err
	}

	for _, item := range dropped {
		log.Printf("⚠️ Order #%d: product %d missing from catalog, %d unit(s) left unpacked", orderID, item.ProductID, item.Quantity)
	}

	for i, pkg := range packages {
		shipment := models.Shipment{OrderID: orderID, Shipped: pkg}
		if err := d.sink.Ship(ctx, shipment); err != nil {
			return &DispatchError{OrderID: orderID, Package: i, Err: err}
		}
	}

	return nil
}
