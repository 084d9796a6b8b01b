package persistence

import (
	"context"
	"testing"

	"github.com/coregenion/holo-gateway/internal/domain/catalog"
	"github.com/coregenion/holo-gateway/internal/domain/identity"
	"github.com/coregenion/holo-gateway/internal/domain/ordering"
	"github.com/coregenion/holo-gateway/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A fresh connection would see an empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&catalog.Product{},
		&catalog.ProductTranslation{},
		&catalog.Variant{},
		&catalog.VariantTranslation{},
		&catalog.VariantPrice{},
		&catalog.Media{},
		&ordering.Address{},
		&ordering.Order{},
		&ordering.OrderLine{},
		&ordering.Shipment{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, active bool) catalog.Product {
	t.Helper()

	product := catalog.Product{
		BaseEntity: shared.NewBaseEntity(),
		Active:     active,
	}
	require.NoError(t, db.Create(&product).Error)

	translation := catalog.ProductTranslation{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  product.ID,
		Locale:     "de",
		Title:      "Kerze",
	}
	require.NoError(t, db.Create(&translation).Error)

	variant := catalog.Variant{
		BaseEntity:    shared.NewBaseEntity(),
		ProductID:     product.ID,
		ArticleNumber: "KRZ-100",
		Weight:        0.35,
	}
	require.NoError(t, db.Create(&variant).Error)

	price := catalog.VariantPrice{
		BaseEntity: shared.NewBaseEntity(),
		VariantID:  variant.ID,
		PriceType:  catalog.PriceTypeCustomer,
		Quantity:   1,
		Amount:     1999,
	}
	require.NoError(t, db.Create(&price).Error)

	return product
}

func TestGormProductRepository_FindActive(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	active := seedProduct(t, db, true)
	seedProduct(t, db, false)

	products, err := repo.FindActive(ctx)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, active.ID, products[0].ID)

	// Associations the projection reads must come back preloaded.
	require.Len(t, products[0].Translations, 1)
	assert.Equal(t, "Kerze", products[0].Translations[0].Title)
	require.Len(t, products[0].Variants, 1)
	require.Len(t, products[0].Variants[0].Prices, 1)
	assert.Equal(t, int64(1999), products[0].Variants[0].Prices[0].Amount)
}

func TestGormProductRepository_FindActiveByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, true)

	found, err := repo.FindActiveByID(ctx, product.ID)

	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)
	require.Len(t, found.Variants, 1)
	assert.Equal(t, "KRZ-100", found.Variants[0].ArticleNumber)
}

func TestGormProductRepository_FindActiveByID_InactiveIsNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	inactive := seedProduct(t, db, false)

	_, err := repo.FindActiveByID(ctx, inactive.ID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
