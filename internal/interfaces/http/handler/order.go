package handler

import (
	"net/http"

	"github.com/coregenion/holo-gateway/internal/application/holo"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// listOrdersQuery carries the order listing filter
type listOrdersQuery struct {
	ID string `form:"id" binding:"omitempty,uuid"`
}

// fulfillRequest carries the shipment confirmation payload. Field presence is
// validated in the application layer so the contract's exact error messages
// apply; a malformed body simply behaves like an empty one.
type fulfillRequest struct {
	TrackingNumber   string `json:"trackingNumber"`
	ShippingLabelURL string `json:"shippingLabelUrl"`
}

// OrderHandler serves the order endpoints
type OrderHandler struct {
	orders      *holo.OrderService
	fulfillment *holo.FulfillmentService
	logger      *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *holo.OrderService, fulfillment *holo.FulfillmentService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders:      orders,
		fulfillment: fulfillment,
		logger:      logger,
	}
}

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders", h.List)
	rg.POST("/orders/:id/fulfill", h.Fulfill)
}

// List handles GET /orders. With ?id= it narrows the listing to one paid
// order; an id that matches nothing still yields 200 with an empty array.
func (h *OrderHandler) List(c *gin.Context) {
	var query listOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request"})
		return
	}

	var id *uuid.UUID
	if query.ID != "" {
		parsed, err := uuid.Parse(query.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request"})
			return
		}
		id = &parsed
	}

	docs, err := h.orders.ListOrders(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Order listing failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, docs)
}

// Fulfill handles POST /orders/:id/fulfill. It marks the order fulfilled,
// stores the carrier label and responds with the updated order document
// wrapped in a single-element array, mirroring the listing shape.
func (h *OrderHandler) Fulfill(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An unparsable id cannot match any order
		c.JSON(http.StatusNotFound, errorBody{Error: "Order not found"})
		return
	}

	var req fulfillRequest
	// Ignore malformed bodies; missing fields fail validation downstream
	// with the contract's messages.
	_ = c.ShouldBindJSON(&req)

	doc, err := h.fulfillment.Fulfill(c.Request.Context(), orderID, holo.FulfillmentRequest{
		TrackingNumber:   req.TrackingNumber,
		ShippingLabelURL: req.ShippingLabelURL,
	})
	if err != nil {
		if holo.IsNotFound(err) {
			c.JSON(http.StatusNotFound, errorBody{Error: "Order not found"})
			return
		}
		h.logger.Error("Fulfillment failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, []holo.OrderDocument{doc})
}
