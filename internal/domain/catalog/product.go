// Package catalog holds the read-only product model exposed to the
// fulfillment partner: products, their purchasable variants, per-locale
// translations, media references and quantity prices.
package catalog

import (
	"github.com/coregenion/holo-gateway/internal/domain/shared"
	"github.com/google/uuid"
)

// Product is the aggregate root of the catalog model. From this service's
// perspective it is immutable; only projections read it.
type Product struct {
	shared.BaseEntity
	Active       bool                 `gorm:"not null;default:true;index"`
	Translations []ProductTranslation `gorm:"foreignKey:ProductID"`
	Media        *Media               `gorm:"foreignKey:ProductID"`
	Variants     []Variant            `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// TranslationFor returns the product translation for the given locale,
// or nil when the product has none.
func (p *Product) TranslationFor(locale string) *ProductTranslation {
	for i := range p.Translations {
		if p.Translations[i].Locale == locale {
			return &p.Translations[i]
		}
	}
	return nil
}

// ProductTranslation holds the localized title and short description of a
// product. ShortDescription stays nil when the shop never provided one,
// which is distinct from an empty string.
type ProductTranslation struct {
	shared.BaseEntity
	ProductID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_translation_locale,priority:1"`
	Locale           string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_product_translation_locale,priority:2"`
	Title            string    `gorm:"type:varchar(255);not null"`
	ShortDescription *string   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductTranslation) TableName() string {
	return "product_translations"
}

// Media is a stored image reference. A row belongs to either a product or a
// variant, never both.
type Media struct {
	shared.BaseEntity
	ProductID *uuid.UUID `gorm:"type:uuid;index"`
	VariantID *uuid.UUID `gorm:"type:uuid;index"`
	FileName  string     `gorm:"type:varchar(255);not null"`
	MediaType string     `gorm:"type:varchar(10);not null"` // file extension, e.g. "jpg"
}

// TableName returns the table name for GORM
func (Media) TableName() string {
	return "product_media"
}
