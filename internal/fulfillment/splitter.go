package fulfillment

import (
	"context"
	"fmt"

	"github.com/nestops/fulfillment-go/internal/models"
)

// MaxPackageMassG is the hard limit on the total mass of one package.
const MaxPackageMassG = 1800

// SplitIntoPackages partitions items into packages whose summed mass
// stays within MaxPackageMassG. Items are processed in the given order
// with a greedy first-fit: each package is filled as far as it goes and
// closed for good once the next unit no longer fits. A product whose
// quantity exceeds one package's capacity is spread across several.
//
// Products missing from the catalog are skipped and returned in
// dropped so the caller can report the discrepancy; a lookup failure
// other than not-found aborts the split.
//
// The result is deterministic for a given item order and catalog.
func SplitIntoPackages(ctx context.Context, items []models.ShipmentItem, products ProductSource) (packages []models.Package, dropped []models.ShipmentItem, err error) {
	var currentPackage models.Package
	currentMass := 0

	for _, item := range items {
		product, err := products.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve mass for product %d: %w", item.ProductID, err)
		}
		if product == nil {
			dropped = append(dropped, item)
			continue
		}

		unitMass := product.MassG

		// A unit heavier than the limit can never be packed, and a
		// non-positive mass is garbage data; treating both like an
		// unknown product keeps the loop below finite.
		if unitMass <= 0 || unitMass > MaxPackageMassG {
			dropped = append(dropped, item)
			continue
		}

		remaining := item.Quantity

		for remaining > 0 {
			spaceLeft := MaxPackageMassG - currentMass

			// Not even one unit fits: close this package out.
			if spaceLeft < unitMass {
				if len(currentPackage) > 0 {
					packages = append(packages, currentPackage)
				}
				currentPackage = nil
				currentMass = 0
				spaceLeft = MaxPackageMassG
			}

			canFit := spaceLeft / unitMass
			qtyToAdd := min(remaining, canFit)

			currentPackage = append(currentPackage, models.ShipmentItem{
				ProductID: item.ProductID,
				Quantity:  qtyToAdd,
			})
			currentMass += qtyToAdd * unitMass
			remaining -= qtyToAdd
		}
	}

	if len(currentPackage) > 0 {
		packages = append(packages, currentPackage)
	}

	return packages, dropped, nil
}
