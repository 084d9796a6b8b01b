package holo

import (
	"context"
	"fmt"

	"github.com/coregenion/holo-gateway/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// ListProductsQuery narrows the catalog listing. A nil ID selects the whole
// active catalog.
type ListProductsQuery struct {
	ID     *uuid.UUID
	Locale string
}

// CatalogService projects active products into partner documents.
type CatalogService struct {
	products      catalog.ProductRepository
	assetsBaseURL string
	defaultLocale string
	locales       []string
	matcher       language.Matcher
	logger        *zap.Logger
}

// NewCatalogService creates a new CatalogService. locales lists the shop's
// supported translation locales; the first entry that equals defaultLocale
// wins ties during matching, so defaultLocale should be listed first.
func NewCatalogService(
	products catalog.ProductRepository,
	assetsBaseURL string,
	defaultLocale string,
	locales []string,
	logger *zap.Logger,
) (*CatalogService, error) {
	if len(locales) == 0 {
		locales = []string{defaultLocale}
	}

	tags := make([]language.Tag, 0, len(locales))
	for _, loc := range locales {
		tag, err := language.Parse(loc)
		if err != nil {
			return nil, fmt.Errorf("unsupported catalog locale %q: %w", loc, err)
		}
		tags = append(tags, tag)
	}

	return &CatalogService{
		products:      products,
		assetsBaseURL: assetsBaseURL,
		defaultLocale: defaultLocale,
		locales:       locales,
		matcher:       language.NewMatcher(tags),
		logger:        logger,
	}, nil
}

// ListProducts returns the partner documents for all active products, or for
// the single active product selected by query.ID. An id that matches nothing
// yields an empty slice, not an error.
func (s *CatalogService) ListProducts(ctx context.Context, query ListProductsQuery) ([]ProductDocument, error) {
	locale := s.resolveLocale(query.Locale)

	var products []catalog.Product
	if query.ID != nil {
		product, err := s.products.FindActiveByID(ctx, *query.ID)
		if err != nil {
			if IsNotFound(err) {
				return []ProductDocument{}, nil
			}
			return nil, err
		}
		products = []catalog.Product{*product}
	} else {
		var err error
		products, err = s.products.FindActive(ctx)
		if err != nil {
			return nil, err
		}
	}

	docs := make([]ProductDocument, 0, len(products))
	for i := range products {
		docs = append(docs, s.projectProduct(&products[i], locale))
	}

	return docs, nil
}

// resolveLocale maps a requested locale onto the closest supported one,
// falling back to the default for absent or unparsable values.
func (s *CatalogService) resolveLocale(requested string) string {
	if requested == "" {
		return s.defaultLocale
	}
	tag, err := language.Parse(requested)
	if err != nil {
		s.logger.Debug("Unparsable locale, using default",
			zap.String("locale", requested),
			zap.String("default", s.defaultLocale),
		)
		return s.defaultLocale
	}
	_, idx, _ := s.matcher.Match(tag)
	return s.locales[idx]
}

func (s *CatalogService) projectProduct(product *catalog.Product, locale string) ProductDocument {
	doc := ProductDocument{
		ID: product.ID.String(),
		// Products have no article number of their own; the id doubles
		// as the partner-facing SKU.
		SKU:      product.ID.String(),
		Image:    s.mediaURL(product.Media),
		Variants: make([]VariantDocument, 0, len(product.Variants)),
	}

	if tr := product.TranslationFor(locale); tr != nil {
		doc.Title = tr.Title
		doc.Description = tr.ShortDescription
	} else {
		doc.Title = "Product " + product.ID.String()
	}

	for i := range product.Variants {
		doc.Variants = append(doc.Variants, s.projectVariant(&product.Variants[i], &doc, locale))
	}

	return doc
}

// projectVariant builds a variant document against its already-projected
// parent: an empty variant title falls back to "<parent title> - <sku>", a
// missing variant description falls back to the parent's resolved
// description. The image never falls back to the parent image.
func (s *CatalogService) projectVariant(variant *catalog.Variant, parent *ProductDocument, locale string) VariantDocument {
	doc := VariantDocument{
		ID:     variant.ID.String(),
		SKU:    variant.ArticleNumber,
		Weight: variant.Weight,
		Image:  s.mediaURL(variant.Media),
		Price:  minorToMajor(0),
	}

	var title string
	if tr := variant.TranslationFor(locale); tr != nil {
		title = tr.Title
		doc.Description = tr.ShortDescription
	}
	if title == "" {
		title = parent.Title + " - " + variant.ArticleNumber
	}
	doc.Title = title

	if doc.Description == nil {
		doc.Description = parent.Description
	}

	if price := variant.PriceFor(catalog.PriceTypeCustomer, 1); price != nil {
		doc.Price = minorToMajor(price.Amount)
	}

	return doc
}

// mediaURL builds the absolute image URL for a media reference, or nil when
// there is none.
func (s *CatalogService) mediaURL(media *catalog.Media) *string {
	if media == nil {
		return nil
	}
	url := s.assetsBaseURL + "/img/article/" + media.FileName + "." + media.MediaType
	return &url
}

// minorToMajor converts integer minor currency units to major units.
func minorToMajor(amount int64) float64 {
	return decimal.NewFromInt(amount).Div(decimal.NewFromInt(100)).InexactFloat64()
}
