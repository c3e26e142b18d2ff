package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nestops/fulfillment-go/internal/fulfillment"
)

// CreateInventoryItem zero-initializes the inventory record for a
// newly registered product. Safe to call again for the same product.
func (s *Store) CreateInventoryItem(ctx context.Context, productID int) error {
	query := `
		INSERT INTO inventory (product_id, quantity)
		VALUES ($1, 0)
		ON CONFLICT (product_id) DO NOTHING
	`

	if _, err := s.q.ExecContext(ctx, query, productID); err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}

	return nil
}

// GetQuantity returns the available quantity of a product.
func (s *Store) GetQuantity(ctx context.Context, productID int) (int, error) {
	query := `SELECT quantity FROM inventory WHERE product_id = $1`

	var quantity int
	err := s.q.QueryRowContext(ctx, query, productID).Scan(&quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fulfillment.ErrProductNotFound
		}
		return 0, fmt.Errorf("failed to get quantity: %w", err)
	}

	return quantity, nil
}

// AddStock increments a product's quantity.
func (s *Store) AddStock(ctx context.Context, productID, qty int) error {
	query := `
		UPDATE inventory
		SET quantity = quantity + $1
		WHERE product_id = $2
	`

	result, err := s.q.ExecContext(ctx, query, qty, productID)
	if err != nil {
		return fmt.Errorf("failed to add stock: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fulfillment.ErrProductNotFound
	}

	return nil
}

// RemoveStock decrements a product's quantity. The quantity guard is
// part of the UPDATE itself, so two orders racing for the last units
// can never both win: the loser's update matches zero rows.
func (s *Store) RemoveStock(ctx context.Context, productID, qty int) error {
	query := `
		UPDATE inventory
		SET quantity = quantity - $1
		WHERE product_id = $2 AND quantity >= $1
	`

	result, err := s.q.ExecContext(ctx, query, qty, productID)
	if err != nil {
		return fmt.Errorf("failed to remove stock: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		// Zero rows means either no record or not enough units.
		if _, err := s.GetQuantity(ctx, productID); err != nil {
			return err
		}
		return fulfillment.ErrInsufficientStock
	}

	return nil
}
