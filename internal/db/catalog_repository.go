package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nestops/fulfillment-go/internal/models"
)

// CatalogRepository stores the product registry. Products are
// immutable once created, so there are no update or delete paths.
type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(database *PostgresDB) *CatalogRepository {
	return &CatalogRepository{db: database.Conn}
}

// Insert registers a product. Re-registering an existing product ID is
// a no-op, which keeps catalog init idempotent.
func (r *CatalogRepository) Insert(ctx context.Context, product models.Product) error {
	query := `
		INSERT INTO products (product_id, product_name, mass_g)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, product.ProductID, product.ProductName, product.MassG); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// GetByID returns a single product, or nil if it isn't registered.
func (r *CatalogRepository) GetByID(ctx context.Context, productID int) (*models.Product, error) {
	query := `SELECT product_id, product_name, mass_g, created_at FROM products WHERE product_id = $1`

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, productID).
		Scan(&p.ProductID, &p.ProductName, &p.MassG, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &p, nil
}

// GetAll returns every registered product.
func (r *CatalogRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT product_id, product_name, mass_g, created_at FROM products ORDER BY product_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.MassG, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	return products, nil
}
