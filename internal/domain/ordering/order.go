// Package ordering holds the order aggregate the fulfillment partner reads
// and transitions: orders, their addresses, lines and the shipping
// sub-record written back on fulfillment.
package ordering

import (
	"time"

	"github.com/coregenion/holo-gateway/internal/domain/shared"
	"github.com/google/uuid"
)

// Order status codes as stored by the shop. Values other than these two are
// in-progress states the partner does not distinguish.
const (
	StatusFulfilled = 5
	StatusCancelled = -1
)

// Order is the aggregate root for partner order operations.
type Order struct {
	shared.BaseEntity
	OrderNumber       string     `gorm:"type:varchar(50);not null;index"`
	Shop              string     `gorm:"type:varchar(50);not null"`
	StatusCode        int        `gorm:"not null;default:0"`
	StatusDate        *time.Time `gorm:""`
	Total             int64      `gorm:"not null;default:0"` // minor currency units
	IsPaid            bool       `gorm:"not null;default:false;index"`
	OrderDate         time.Time  `gorm:"not null"`
	UserID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	DeliveryAddressID *uuid.UUID `gorm:"type:uuid"`
	DeliveryAddress   *Address   `gorm:"foreignKey:DeliveryAddressID"`
	BillingAddressID  *uuid.UUID `gorm:"type:uuid"`
	BillingAddress    *Address   `gorm:"foreignKey:BillingAddressID"`
	Shipment          *Shipment  `gorm:"foreignKey:OrderID"`
	Lines             []OrderLine `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// IsFulfilled reports whether the order status equals the fulfilled code.
func (o *Order) IsFulfilled() bool {
	return o.StatusCode == StatusFulfilled
}

// IsCancelled reports whether the order status equals the cancelled code.
func (o *Order) IsCancelled() bool {
	return o.StatusCode == StatusCancelled
}

// ShippingAddress returns the delivery address, falling back to the billing
// address, or nil when the order has neither.
func (o *Order) ShippingAddress() *Address {
	if o.DeliveryAddress != nil {
		return o.DeliveryAddress
	}
	return o.BillingAddress
}

// Fulfill advances the order to the fulfilled status. The overwrite is
// unconditional: re-fulfilling an already fulfilled or cancelled order is
// permitted and simply re-stamps the status.
func (o *Order) Fulfill(now time.Time) {
	o.StatusCode = StatusFulfilled
	o.StatusDate = &now
	o.UpdatedAt = now
}

// GetOrCreateShipment returns the order's shipping sub-record, creating it on
// first use. An order never has more than one live sub-record; repeat
// fulfillment calls update the existing one in place.
func (o *Order) GetOrCreateShipment() *Shipment {
	if o.Shipment == nil {
		o.Shipment = &Shipment{
			BaseEntity: shared.NewBaseEntity(),
			OrderID:    o.ID,
		}
	}
	return o.Shipment
}

// Address is a delivery or billing address attached to an order.
type Address struct {
	shared.BaseEntity
	FirstName   string `gorm:"type:varchar(100);not null"`
	LastName    string `gorm:"type:varchar(100);not null"`
	Company     string `gorm:"type:varchar(200)"`
	Street      string `gorm:"type:varchar(255);not null"`
	ZipCode     string `gorm:"type:varchar(20);not null"`
	City        string `gorm:"type:varchar(100);not null"`
	CountryCode string `gorm:"type:varchar(2);not null"` // ISO 3166-1 alpha-2
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "order_addresses"
}

// OrderLine references a purchased variant and its quantity.
type OrderLine struct {
	shared.BaseEntity
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	VariantID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}
