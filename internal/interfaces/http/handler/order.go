package handler

import (
	"github.com/gin-gonic/gin"

	fulfillmentapp "github.com/papersupply/backend/internal/application/fulfillment"
)

// OrderHandler handles order processing endpoints
type OrderHandler struct {
	BaseHandler
	fulfillmentService *fulfillmentapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(fulfillmentService *fulfillmentapp.Service) *OrderHandler {
	return &OrderHandler{fulfillmentService: fulfillmentService}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Process)
	}
}

// Process allocates stock to an order, recording sales, backorders
// and supplier reorders as needed
func (h *OrderHandler) Process(c *gin.Context) {
	var req fulfillmentapp.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.fulfillmentService.ProcessOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}
