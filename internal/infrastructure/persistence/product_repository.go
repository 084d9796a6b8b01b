package persistence

import (
	"context"
	"errors"

	"github.com/coregenion/holo-gateway/internal/domain/catalog"
	"github.com/coregenion/holo-gateway/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ensure GormProductRepository implements catalog.ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindActive returns all active products with their projection associations
func (r *GormProductRepository) FindActive(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.withAssociations(r.db.WithContext(ctx)).
		Where("active = ?", true).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindActiveByID returns the active product with the given ID
func (r *GormProductRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.withAssociations(r.db.WithContext(ctx)).
		Where("id = ? AND active = ?", id, true).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// withAssociations preloads everything the catalog projection reads
func (r *GormProductRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Translations").
		Preload("Media").
		Preload("Variants").
		Preload("Variants.Translations").
		Preload("Variants.Media").
		Preload("Variants.Prices")
}
