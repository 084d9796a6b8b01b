package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/coregenion/holo-gateway/internal/domain/identity"
	"github.com/coregenion/holo-gateway/internal/domain/ordering"
	"github.com/coregenion/holo-gateway/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, email string) identity.User {
	t.Helper()
	user := identity.User{BaseEntity: shared.NewBaseEntity(), Email: email}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedOrder(t *testing.T, db *gorm.DB, user identity.User, number string, paid bool) ordering.Order {
	t.Helper()

	delivery := ordering.Address{
		BaseEntity:  shared.NewBaseEntity(),
		FirstName:   "Erika",
		LastName:    "Mustermann",
		Street:      "Musterstr. 1",
		ZipCode:     "12345",
		City:        "Berlin",
		CountryCode: "DE",
	}
	require.NoError(t, db.Create(&delivery).Error)

	order := ordering.Order{
		BaseEntity:        shared.NewBaseEntity(),
		OrderNumber:       number,
		Shop:              "MyAroma",
		StatusCode:        2,
		Total:             2599,
		IsPaid:            paid,
		OrderDate:         time.Date(2026, 3, 14, 9, 30, 5, 0, time.UTC),
		UserID:            user.ID,
		DeliveryAddressID: &delivery.ID,
	}
	require.NoError(t, db.Create(&order).Error)

	line := ordering.OrderLine{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    order.ID,
		VariantID:  shared.NewBaseEntity().ID,
		Quantity:   2,
	}
	require.NoError(t, db.Create(&line).Error)

	return order
}

func TestGormOrderRepository_FindPaid_FiltersAndOrders(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "erika@example.com")

	first := seedOrder(t, db, user, "MA-1", true)
	seedOrder(t, db, user, "MA-2", false)
	second := seedOrder(t, db, user, "MA-3", true)

	orders, err := repo.FindPaid(ctx, 50)

	require.NoError(t, err)
	require.Len(t, orders, 2)
	// Newest first: ids are time ordered, so the later insert leads.
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	require.NotNil(t, orders[0].DeliveryAddress)
	assert.Equal(t, "Berlin", orders[0].DeliveryAddress.City)
	require.Len(t, orders[0].Lines, 1)
}

func TestGormOrderRepository_FindPaid_AppliesLimit(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "erika@example.com")

	for i := 0; i < 3; i++ {
		seedOrder(t, db, user, "MA-"+string(rune('a'+i)), true)
	}

	orders, err := repo.FindPaid(ctx, 2)

	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestGormOrderRepository_FindPaidByID_UnpaidIsNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "erika@example.com")

	unpaid := seedOrder(t, db, user, "MA-1", false)

	_, err := repo.FindPaidByID(ctx, unpaid.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// FindByID ignores the payment filter.
	found, err := repo.FindByID(ctx, unpaid.ID)
	require.NoError(t, err)
	assert.Equal(t, unpaid.ID, found.ID)
}

func TestGormOrderRepository_SaveWithShipment(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "erika@example.com")

	order := seedOrder(t, db, user, "MA-1", true)
	loaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)

	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	loaded.Fulfill(now)
	loaded.GetOrCreateShipment().Confirm(order.ID.String()+".pdf", "00340434161094000001", now)
	require.NoError(t, repo.SaveWithShipment(ctx, loaded))

	reloaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, ordering.StatusFulfilled, reloaded.StatusCode)
	require.NotNil(t, reloaded.Shipment)
	assert.Equal(t, "00340434161094000001", reloaded.Shipment.ShipmentNumber)
	assert.Equal(t, "ok", reloaded.Shipment.ResponseText)

	// The order's lines and address survive the save untouched.
	require.Len(t, reloaded.Lines, 1)
	require.NotNil(t, reloaded.DeliveryAddress)

	// A second confirmation reuses the same sub-record.
	shipmentID := reloaded.Shipment.ID
	reloaded.Fulfill(now.Add(time.Hour))
	reloaded.GetOrCreateShipment().Confirm(order.ID.String()+".pdf", "NEW-TRACKING", now.Add(time.Hour))
	require.NoError(t, repo.SaveWithShipment(ctx, reloaded))

	final, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, shipmentID, final.Shipment.ID)
	assert.Equal(t, "NEW-TRACKING", final.Shipment.ShipmentNumber)

	var count int64
	require.NoError(t, db.Model(&ordering.Shipment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
