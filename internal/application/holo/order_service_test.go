package holo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/coregenion/holo-gateway/internal/domain/identity"
	"github.com/coregenion/holo-gateway/internal/domain/ordering"
	"github.com/coregenion/holo-gateway/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrderRepository is a mock implementation of ordering.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindPaid(ctx context.Context, limit int) ([]ordering.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindPaidByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) SaveWithShipment(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func newTestOrder() ordering.Order {
	delivery := &ordering.Address{
		BaseEntity:  shared.NewBaseEntity(),
		FirstName:   "Erika",
		LastName:    "Mustermann",
		Company:     "Musterfirma",
		Street:      "Musterstr. 1",
		ZipCode:     "12345",
		City:        "Berlin",
		CountryCode: "DE",
	}
	order := ordering.Order{
		BaseEntity:        shared.NewBaseEntity(),
		OrderNumber:       "MA-1042",
		Shop:              "MyAroma",
		StatusCode:        2,
		Total:             2599,
		IsPaid:            true,
		OrderDate:         time.Date(2026, 3, 14, 9, 30, 5, 0, time.UTC),
		UserID:            uuid.New(),
		DeliveryAddressID: &delivery.ID,
		DeliveryAddress:   delivery,
	}
	order.Lines = []ordering.OrderLine{
		{BaseEntity: shared.NewBaseEntity(), OrderID: order.ID, VariantID: uuid.New(), Quantity: 2},
	}
	return order
}

func TestOrderService_ListOrders_ProjectsDocument(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockUsers := new(MockUserRepository)
	service := NewOrderService(mockOrders, mockUsers, zap.NewNop())

	ctx := context.Background()
	order := newTestOrder()
	user := &identity.User{BaseEntity: shared.BaseEntity{ID: order.UserID}, Email: "erika@example.com"}

	mockOrders.On("FindPaid", ctx, 50).Return([]ordering.Order{order}, nil)
	mockUsers.On("FindByID", ctx, order.UserID).Return(user, nil)

	docs, err := service.ListOrders(ctx, nil)

	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, order.ID.String(), doc.ID)
	assert.Equal(t, "MA-1042", doc.OrderName)
	assert.False(t, doc.Fulfilled)
	assert.False(t, doc.Cancelled)
	assert.InDelta(t, 25.99, doc.TotalPrice, 1e-9)
	assert.Equal(t, "2026-03-14 09:30:05", doc.CreatedAt)
	require.NotNil(t, doc.Shipping)
	assert.Equal(t, "erika@example.com", doc.Shipping.Email)
	assert.Equal(t, "Erika", doc.Shipping.FirstName)
	assert.Equal(t, "Musterfirma", doc.Shipping.CompanyName)
	assert.Equal(t, "DE", doc.Shipping.CountryCode)
	require.Len(t, doc.Products, 1)
	assert.Equal(t, 2, doc.Products[0].Quantity)
	assert.Equal(t, order.Lines[0].VariantID.String(), doc.Products[0].Variant)
	mockOrders.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestOrderService_ListOrders_ByID_NotFoundYieldsEmpty(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	service := NewOrderService(mockOrders, new(MockUserRepository), zap.NewNop())

	ctx := context.Background()
	id := uuid.New()
	mockOrders.On("FindPaidByID", ctx, id).Return(nil, shared.ErrNotFound)

	docs, err := service.ListOrders(ctx, &id)

	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.NotNil(t, docs)
}

func TestOrderService_ProjectOrder_StatusFlags(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewOrderService(new(MockOrderRepository), mockUsers, zap.NewNop())
	ctx := context.Background()

	order := newTestOrder()
	mockUsers.On("FindByID", ctx, order.UserID).Return(nil, shared.ErrNotFound)

	order.StatusCode = ordering.StatusFulfilled
	doc, err := service.ProjectOrder(ctx, &order)
	require.NoError(t, err)
	assert.True(t, doc.Fulfilled)
	assert.False(t, doc.Cancelled)

	order.StatusCode = ordering.StatusCancelled
	doc, err = service.ProjectOrder(ctx, &order)
	require.NoError(t, err)
	assert.False(t, doc.Fulfilled)
	assert.True(t, doc.Cancelled)
}

func TestOrderService_ProjectOrder_BillingAddressFallback(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewOrderService(new(MockOrderRepository), mockUsers, zap.NewNop())
	ctx := context.Background()

	order := newTestOrder()
	billing := &ordering.Address{
		BaseEntity: shared.NewBaseEntity(),
		FirstName:  "Max",
		LastName:   "Mustermann",
		Street:     "Rechnungsweg 2",
		City:       "Hamburg",
	}
	order.DeliveryAddress = nil
	order.DeliveryAddressID = nil
	order.BillingAddressID = &billing.ID
	order.BillingAddress = billing
	mockUsers.On("FindByID", ctx, order.UserID).Return(nil, shared.ErrNotFound)

	doc, err := service.ProjectOrder(ctx, &order)

	require.NoError(t, err)
	require.NotNil(t, doc.Shipping)
	assert.Equal(t, "Max", doc.Shipping.FirstName)
	assert.Equal(t, "Rechnungsweg 2", doc.Shipping.Street)
}

func TestOrderService_ProjectOrder_NoAddressSkipsUserLookup(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewOrderService(new(MockOrderRepository), mockUsers, zap.NewNop())
	ctx := context.Background()

	order := newTestOrder()
	order.DeliveryAddress = nil
	order.DeliveryAddressID = nil

	doc, err := service.ProjectOrder(ctx, &order)

	require.NoError(t, err)
	assert.Nil(t, doc.Shipping)
	mockUsers.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)

	// The empty shipping block serializes as an empty object, not null.
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"shipping":{}`)
}

func TestOrderService_ProjectOrder_MissingUserDegradesToEmptyEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewOrderService(new(MockOrderRepository), mockUsers, zap.NewNop())
	ctx := context.Background()

	order := newTestOrder()
	mockUsers.On("FindByID", ctx, order.UserID).Return(nil, shared.ErrNotFound)

	doc, err := service.ProjectOrder(ctx, &order)

	require.NoError(t, err)
	require.NotNil(t, doc.Shipping)
	assert.Empty(t, doc.Shipping.Email)
	assert.Equal(t, "Erika", doc.Shipping.FirstName)
}

func TestOrderService_ProjectOrder_ShippingKeysStayPresentWhenEmpty(t *testing.T) {
	mockUsers := new(MockUserRepository)
	service := NewOrderService(new(MockOrderRepository), mockUsers, zap.NewNop())
	ctx := context.Background()

	// Private customer: the address has no company, and the owner lookup
	// fails. The shipping block must still carry every key.
	order := newTestOrder()
	order.DeliveryAddress.Company = ""
	mockUsers.On("FindByID", ctx, order.UserID).Return(nil, shared.ErrNotFound)

	doc, err := service.ProjectOrder(ctx, &order)
	require.NoError(t, err)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	var shipping map[string]string
	require.NoError(t, json.Unmarshal(decoded["shipping"], &shipping))

	for _, key := range []string{
		"email", "firstName", "lastName", "companyName",
		"street", "zipCode", "city", "countryCode",
	} {
		assert.Contains(t, shipping, key)
	}
	assert.Equal(t, "", shipping["companyName"])
	assert.Equal(t, "", shipping["email"])
	assert.Equal(t, "Erika", shipping["firstName"])
}
