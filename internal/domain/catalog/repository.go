package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the read-only queries the catalog projection
// needs. Implementations load translations, media, variants and variant
// prices along with each product.
type ProductRepository interface {
	// FindActive returns all active products.
	FindActive(ctx context.Context) ([]Product, error)

	// FindActiveByID returns the active product with the given ID, or
	// shared.ErrNotFound.
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Product, error)
}
