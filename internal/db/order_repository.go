package db

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/nestops/fulfillment-go/internal/models"
)

// InsertOrder persists the original order in full. An order with no
// requested items still gets its header row.
func (s *Store) InsertOrder(ctx context.Context, order models.Order) error {
	orderQuery := `INSERT INTO orders (order_id) VALUES ($1)`
	if _, err := s.q.ExecContext(ctx, orderQuery, order.OrderID); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
	`
	for _, item := range order.Requested {
		if _, err := s.q.ExecContext(ctx, itemQuery, order.OrderID, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return nil
}

// InsertPendingOrder records the unfulfilled remainder of an order.
func (s *Store) InsertPendingOrder(ctx context.Context, pending models.PendingOrder) error {
	query := `
		INSERT INTO pending_order_items (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
	`

	for _, item := range pending.Requested {
		if _, err := s.q.ExecContext(ctx, query, pending.OrderID, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("failed to insert pending order item: %w", err)
		}
	}

	return nil
}

// GetPendingOrders returns every pending order, grouped from its item
// rows, in ascending order ID. CreatedAt carries the earliest deferral
// time of the order's lines so callers can replay oldest-first.
func (s *Store) GetPendingOrders(ctx context.Context) ([]models.PendingOrder, error) {
	query := `
		SELECT order_id, product_id, quantity, created_at
		FROM pending_order_items
		ORDER BY order_id, product_id
	`

	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending orders: %w", err)
	}
	defer rows.Close()

	var pending []models.PendingOrder
	for rows.Next() {
		var p models.PendingOrder
		var item models.OrderItem
		if err := rows.Scan(&p.OrderID, &item.ProductID, &item.Quantity, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pending order item: %w", err)
		}

		last := len(pending) - 1
		if last >= 0 && pending[last].OrderID == p.OrderID {
			pending[last].Requested = append(pending[last].Requested, item)
			if p.CreatedAt.Before(pending[last].CreatedAt) {
				pending[last].CreatedAt = p.CreatedAt
			}
			continue
		}

		p.Requested = []models.OrderItem{item}
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pending orders: %w", err)
	}

	return pending, nil
}

// UpdatePendingOrder rewrites a pending order's item list to exactly
// the given remainder. Surviving lines keep their original created_at,
// so the order's deferral age survives partial reconciliation and
// oldest-first replay stays meaningful.
func (s *Store) UpdatePendingOrder(ctx context.Context, orderID int, remaining []models.OrderItem) error {
	if len(remaining) == 0 {
		return s.RemovePendingOrder(ctx, orderID)
	}

	query := `
		INSERT INTO pending_order_items (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity
	`
	keep := make([]int64, 0, len(remaining))
	for _, item := range remaining {
		if _, err := s.q.ExecContext(ctx, query, orderID, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("failed to update pending order: %w", err)
		}
		keep = append(keep, int64(item.ProductID))
	}

	// Drop the lines that fully cleared.
	deleteQuery := `
		DELETE FROM pending_order_items
		WHERE order_id = $1 AND NOT (product_id = ANY($2))
	`
	if _, err := s.q.ExecContext(ctx, deleteQuery, orderID, pq.Array(keep)); err != nil {
		return fmt.Errorf("failed to trim pending order: %w", err)
	}

	return nil
}

// RemovePendingOrder deletes a pending order entirely.
func (s *Store) RemovePendingOrder(ctx context.Context, orderID int) error {
	query := `DELETE FROM pending_order_items WHERE order_id = $1`

	if _, err := s.q.ExecContext(ctx, query, orderID); err != nil {
		return fmt.Errorf("failed to remove pending order: %w", err)
	}

	return nil
}
