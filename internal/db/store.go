package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nestops/fulfillment-go/internal/fulfillment"
)

// querier is satisfied by both *sql.DB and *sql.Tx, so the repository
// methods below run unchanged inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the Postgres-backed persistence boundary for allocation:
// the inventory ledger and the order/pending-order records.
type Store struct {
	db *sql.DB
	q  querier
}

func NewStore(database *PostgresDB) *Store {
	return &Store{db: database.Conn, q: database.Conn}
}

// WithinTx runs fn against a view of the store bound to one database
// transaction. An error from fn rolls everything back, so a ledger
// decrement never outlives a failed order write or dispatch.
func (s *Store) WithinTx(ctx context.Context, fn func(tx fulfillment.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Store{db: s.db, q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
