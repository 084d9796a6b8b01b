package holo

import (
	"context"
	"errors"

	"github.com/coregenion/holo-gateway/internal/domain/identity"
	"github.com/coregenion/holo-gateway/internal/domain/ordering"
	"github.com/coregenion/holo-gateway/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// paidOrderListLimit caps the unfiltered order listing. The partner polls
// frequently, so only the newest slice of paid orders is returned.
const paidOrderListLimit = 50

// createdAtLayout is the partner contract's timestamp format. No timezone
// conversion is applied; the stored wall-clock time goes out as-is.
const createdAtLayout = "2006-01-02 15:04:05"

// OrderService projects paid orders into partner documents.
type OrderService struct {
	orders ordering.OrderRepository
	users  identity.UserRepository
	logger *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orders ordering.OrderRepository, users identity.UserRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		users:  users,
		logger: logger,
	}
}

// ListOrders returns the partner documents for paid orders: all (newest
// first, at most 50) or the single paid order selected by id. An id that
// matches nothing yields an empty slice.
func (s *OrderService) ListOrders(ctx context.Context, id *uuid.UUID) ([]OrderDocument, error) {
	var orders []ordering.Order
	if id != nil {
		order, err := s.orders.FindPaidByID(ctx, *id)
		if err != nil {
			if IsNotFound(err) {
				return []OrderDocument{}, nil
			}
			return nil, err
		}
		orders = []ordering.Order{*order}
	} else {
		var err error
		orders, err = s.orders.FindPaid(ctx, paidOrderListLimit)
		if err != nil {
			return nil, err
		}
	}

	docs := make([]OrderDocument, 0, len(orders))
	for i := range orders {
		doc, err := s.ProjectOrder(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// ProjectOrder builds the partner document for a single order. The fulfilled
// and cancelled flags are derived independently from the status code; the
// shipping block uses the delivery address, falls back to the billing
// address, and stays empty when the order has neither — in which case no
// user lookup happens at all.
func (s *OrderService) ProjectOrder(ctx context.Context, order *ordering.Order) (OrderDocument, error) {
	doc := OrderDocument{
		ID:         order.ID.String(),
		OrderName:  order.OrderNumber,
		Fulfilled:  order.IsFulfilled(),
		Cancelled:  order.IsCancelled(),
		TotalPrice: minorToMajor(order.Total),
		CreatedAt:  order.OrderDate.Format(createdAtLayout),
		Products:   make([]OrderLineDocument, 0, len(order.Lines)),
	}

	if addr := order.ShippingAddress(); addr != nil {
		doc.Shipping = &ShippingDocument{
			Email:       s.lookupEmail(ctx, order),
			FirstName:   addr.FirstName,
			LastName:    addr.LastName,
			CompanyName: addr.Company,
			Street:      addr.Street,
			ZipCode:     addr.ZipCode,
			City:        addr.City,
			CountryCode: addr.CountryCode,
		}
	}

	for i := range order.Lines {
		doc.Products = append(doc.Products, OrderLineDocument{
			Quantity: order.Lines[i].Quantity,
			Variant:  order.Lines[i].VariantID.String(),
		})
	}

	return doc, nil
}

// lookupEmail resolves the order owner's email. A missing user degrades to
// an empty email rather than failing the whole projection.
func (s *OrderService) lookupEmail(ctx context.Context, order *ordering.Order) string {
	user, err := s.users.FindByID(ctx, order.UserID)
	if err != nil {
		s.logger.Warn("Order owner lookup failed",
			zap.String("order_id", order.ID.String()),
			zap.String("user_id", order.UserID.String()),
			zap.Error(err),
		)
		return ""
	}
	return user.Email
}

// IsNotFound reports whether err is the repository not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
