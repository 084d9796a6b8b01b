package catalog

import (
	"github.com/coregenion/holo-gateway/internal/domain/shared"
	"github.com/google/uuid"
)

// PriceTypeCustomer is the price list the partner contract reads: the
// single-quantity end-customer price.
const PriceTypeCustomer = "c"

// Variant is a purchasable configuration of a product with its own article
// number, weight and price records.
type Variant struct {
	shared.BaseEntity
	ProductID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	ArticleNumber string               `gorm:"type:varchar(50);not null;index"`
	Weight        float64              `gorm:"not null;default:0"`
	Translations  []VariantTranslation `gorm:"foreignKey:VariantID"`
	Media         *Media               `gorm:"foreignKey:VariantID"`
	Prices        []VariantPrice       `gorm:"foreignKey:VariantID"`
}

// TableName returns the table name for GORM
func (Variant) TableName() string {
	return "variants"
}

// TranslationFor returns the variant translation for the given locale, or nil.
func (v *Variant) TranslationFor(locale string) *VariantTranslation {
	for i := range v.Translations {
		if v.Translations[i].Locale == locale {
			return &v.Translations[i]
		}
	}
	return nil
}

// PriceFor returns the price record matching (priceType, quantity), or nil
// when no such record exists.
func (v *Variant) PriceFor(priceType string, quantity int) *VariantPrice {
	for i := range v.Prices {
		if v.Prices[i].PriceType == priceType && v.Prices[i].Quantity == quantity {
			return &v.Prices[i]
		}
	}
	return nil
}

// VariantTranslation holds the localized title and short description of a
// variant. Both fall back to the parent product in the projection when
// missing; an empty title also falls back, a nil description does.
type VariantTranslation struct {
	shared.BaseEntity
	VariantID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_variant_translation_locale,priority:1"`
	Locale           string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_variant_translation_locale,priority:2"`
	Title            string    `gorm:"type:varchar(255);not null"`
	ShortDescription *string   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (VariantTranslation) TableName() string {
	return "variant_translations"
}

// VariantPrice is a price record keyed by (variant, price type, quantity).
// Amount is stored in minor currency units.
type VariantPrice struct {
	shared.BaseEntity
	VariantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_variant_price_key,priority:1"`
	PriceType string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_variant_price_key,priority:2"`
	Quantity  int       `gorm:"not null;default:1;uniqueIndex:idx_variant_price_key,priority:3"`
	Amount    int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (VariantPrice) TableName() string {
	return "variant_prices"
}
