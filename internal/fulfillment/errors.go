package fulfillment

import (
	"errors"
	"fmt"
)

// ErrProductNotFound means a product has no catalog or inventory record.
// On an inventory read it aborts the operation that hit it; it is never
// treated as zero stock.
var ErrProductNotFound = errors.New("product not found")

// ErrInsufficientStock means a conditional decrement found fewer units
// than requested. For the allocator this is the deferral trigger, not a
// failure.
var ErrInsufficientStock = errors.New("insufficient stock")

// ValidationError rejects malformed input at the boundary, before the
// core runs.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + e.Reason
}

// DispatchError reports that the shipping sink refused a package.
// Packages before Package were accepted; callers must not treat the
// order as fully shipped.
type DispatchError struct {
	OrderID int
	Package int
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch failed for order %d, package %d: %v", e.OrderID, e.Package, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
