package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	inventoryapp "github.com/papersupply/backend/internal/application/inventory"
)

// InventoryHandler handles stock availability and adjustment endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.Service
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.Service) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory")
	{
		inventory.GET("/availability", h.CheckAvailability)
		inventory.GET("/stock", h.StockSnapshot)
		inventory.GET("/low-stock", h.LowStock)
		inventory.POST("/items/:item_name/adjust", h.AdjustStock)
	}
}

// CheckAvailability answers whether a quantity can be served from stock
func (h *InventoryHandler) CheckAvailability(c *gin.Context) {
	itemName := c.Query("item")
	if itemName == "" {
		h.BadRequest(c, "query parameter 'item' is required")
		return
	}

	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil || quantity <= 0 {
		h.BadRequest(c, "query parameter 'quantity' must be a positive integer")
		return
	}

	result, err := h.inventoryService.CheckAvailability(c.Request.Context(), itemName, quantity, time.Now().UTC())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// StockSnapshot returns current stock counts for every item
func (h *InventoryHandler) StockSnapshot(c *gin.Context) {
	snapshot, err := h.inventoryService.StockSnapshot(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, snapshot)
}

// LowStock lists items at or below their minimum stock level
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.inventoryService.LowStockItems(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// AdjustStock applies a signed delta to an item's stock
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req inventoryapp.StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.inventoryService.AdjustStock(c.Request.Context(), c.Param("item_name"), req.Delta)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}
