package ordering

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the order queries and the single write the partner
// integration performs. Implementations load addresses, lines and the
// shipping sub-record along with each order.
type OrderRepository interface {
	// FindPaid returns paid orders ordered by id descending, at most limit.
	FindPaid(ctx context.Context, limit int) ([]Order, error)

	// FindPaidByID returns the paid order with the given ID, or
	// shared.ErrNotFound.
	FindPaidByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByID returns the order with the given ID regardless of payment
	// state, or shared.ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// SaveWithShipment persists the order and its shipping sub-record in a
	// single transaction. Either both land or neither does.
	SaveWithShipment(ctx context.Context, order *Order) error
}
