// Package holo implements the partner-facing projections and the order
// fulfillment transition for the Holo print-on-demand integration.
package holo

import "encoding/json"

// ProductDocument is the partner-facing shape of a catalog product.
// Field names are fixed by the partner contract.
type ProductDocument struct {
	ID          string            `json:"id"`
	SKU         string            `json:"sku"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Image       *string           `json:"image"`
	Variants    []VariantDocument `json:"variants"`
}

// VariantDocument is the partner-facing shape of a product variant.
type VariantDocument struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	SKU         string  `json:"sku"`
	Weight      float64 `json:"weight"`
	Price       float64 `json:"price"`
}

// OrderDocument is the partner-facing shape of an order. Shipping is nil
// when the order has no delivery and no billing address.
type OrderDocument struct {
	ID         string              `json:"id"`
	OrderName  string              `json:"orderName"`
	Fulfilled  bool                `json:"fulfilled"`
	Cancelled  bool                `json:"cancelled"`
	TotalPrice float64             `json:"totalPrice"`
	CreatedAt  string              `json:"createdAt"`
	Shipping   *ShippingDocument   `json:"shipping"`
	Products   []OrderLineDocument `json:"products"`
}

// MarshalJSON renders a missing shipping block as {} rather than null.
// A present block always carries all keys, empty or not.
func (d OrderDocument) MarshalJSON() ([]byte, error) {
	type alias OrderDocument
	wire := struct {
		alias
		Shipping any `json:"shipping"`
	}{alias: alias(d), Shipping: d.Shipping}
	if d.Shipping == nil {
		wire.Shipping = struct{}{}
	}
	return json.Marshal(wire)
}

// ShippingDocument is the shipping block of an order document.
type ShippingDocument struct {
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CompanyName string `json:"companyName"`
	Street      string `json:"street"`
	ZipCode     string `json:"zipCode"`
	City        string `json:"city"`
	CountryCode string `json:"countryCode"`
}

// OrderLineDocument references a purchased variant by id only.
type OrderLineDocument struct {
	Quantity int    `json:"quantity"`
	Variant  string `json:"variant"`
}
