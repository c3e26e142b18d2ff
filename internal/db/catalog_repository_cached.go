package db

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/nestops/fulfillment-go/internal/cache"
	"github.com/nestops/fulfillment-go/internal/models"
)

// CachedCatalogRepository wraps the catalog with a Redis cache-aside
// layer. Product rows never change after creation, so cached entries
// only ever expire, never go stale.
type CachedCatalogRepository struct {
	repo  *CatalogRepository
	cache *cache.RedisCache
}

func NewCachedCatalogRepository(repo *CatalogRepository, cache *cache.RedisCache) *CachedCatalogRepository {
	return &CachedCatalogRepository{
		repo:  repo,
		cache: cache,
	}
}

func productKey(productID int) string {
	return fmt.Sprintf("product:%d", productID)
}

func allProductsKey() string {
	return "products:all"
}

// GetByID returns a single product (with caching), nil if unknown.
func (r *CachedCatalogRepository) GetByID(ctx context.Context, productID int) (*models.Product, error) {
	cacheKey := productKey(productID)

	var product models.Product
	err := r.cache.Get(ctx, cacheKey, &product)
	if err == nil {
		return &product, nil
	}
	if err != redis.Nil {
		log.Printf("⚠️ Cache error: %v", err)
	}

	p, err := r.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}

	if err := r.cache.Set(ctx, cacheKey, p); err != nil {
		log.Printf("⚠️ Failed to cache product %d: %v", productID, err)
	}

	return p, nil
}

// GetAll returns all products (with caching).
func (r *CachedCatalogRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	cacheKey := allProductsKey()

	var products []models.Product
	if err := r.cache.Get(ctx, cacheKey, &products); err == nil {
		return products, nil
	}

	products, err := r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, cacheKey, products); err != nil {
		log.Printf("⚠️ Failed to cache products: %v", err)
	}

	return products, nil
}

// Insert registers a product and invalidates the product list cache.
func (r *CachedCatalogRepository) Insert(ctx context.Context, product models.Product) error {
	if err := r.repo.Insert(ctx, product); err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, allProductsKey()); err != nil {
		log.Printf("⚠️ Failed to invalidate product list cache: %v", err)
	}

	return nil
}
