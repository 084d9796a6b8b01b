package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/coregenion/holo-gateway/internal/application/holo"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// listProductsQuery carries the catalog listing filters
type listProductsQuery struct {
	ID     string `form:"id" binding:"omitempty,uuid"`
	Locale string `form:"locale"`
}

// ProductHandler serves the catalog endpoints
type ProductHandler struct {
	catalog *holo.CatalogService
	timeout time.Duration
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler. timeout bounds a single
// catalog listing; projecting the full catalog is the slowest call of the
// integration.
func NewProductHandler(catalog *holo.CatalogService, timeout time.Duration, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		timeout: timeout,
		logger:  logger,
	}
}

// RegisterRoutes registers the catalog routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.List)
}

// List handles GET /products. With ?id= it narrows the listing to one
// product; an id that matches nothing still yields 200 with an empty array.
func (h *ProductHandler) List(c *gin.Context) {
	var query listProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request"})
		return
	}

	listQuery := holo.ListProductsQuery{Locale: query.Locale}
	if query.ID != "" {
		id, err := uuid.Parse(query.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request"})
			return
		}
		listQuery.ID = &id
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	docs, err := h.catalog.ListProducts(ctx, listQuery)
	if err != nil {
		h.logger.Error("Product listing failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, docs)
}
