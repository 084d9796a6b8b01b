package persistence

import (
	"context"
	"errors"

	"github.com/coregenion/holo-gateway/internal/domain/ordering"
	"github.com/coregenion/holo-gateway/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ensure GormOrderRepository implements ordering.OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindPaid returns paid orders ordered by id descending, at most limit
func (r *GormOrderRepository) FindPaid(ctx context.Context, limit int) ([]ordering.Order, error) {
	var orders []ordering.Order
	if err := r.withAssociations(r.db.WithContext(ctx)).
		Where("is_paid = ?", true).
		Order("id DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindPaidByID returns the paid order with the given ID
func (r *GormOrderRepository) FindPaidByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.withAssociations(r.db.WithContext(ctx)).
		Where("id = ? AND is_paid = ?", id, true).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByID returns the order with the given ID regardless of payment state
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.withAssociations(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// SaveWithShipment persists the order row and its shipping sub-record in one
// transaction. Addresses and lines are never written by this service, so
// association auto-saving is disabled.
func (r *GormOrderRepository) SaveWithShipment(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
			return err
		}
		if order.Shipment != nil {
			if err := tx.Save(order.Shipment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// withAssociations preloads everything the order projection reads
func (r *GormOrderRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("DeliveryAddress").
		Preload("BillingAddress").
		Preload("Shipment").
		Preload("Lines")
}
