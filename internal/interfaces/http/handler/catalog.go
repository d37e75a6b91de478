package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/papersupply/backend/internal/application/catalog"
)

// CatalogHandler handles catalog item endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/:item_name", h.Get)
		items.PUT("/:item_name", h.Update)
		items.DELETE("/:item_name", h.Delete)
	}
}

// Create adds a product to the catalog
func (h *CatalogHandler) Create(c *gin.Context) {
	var req catalogapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.catalogService.CreateItem(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// Get loads a single item by name
func (h *CatalogHandler) Get(c *gin.Context) {
	item, err := h.catalogService.GetItem(c.Request.Context(), c.Param("item_name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// List returns a page of the catalog, optionally filtered by category
func (h *CatalogHandler) List(c *gin.Context) {
	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.catalogService.ListItems(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update changes an item's price or reorder threshold
func (h *CatalogHandler) Update(c *gin.Context) {
	var req catalogapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.catalogService.UpdateItem(c.Request.Context(), c.Param("item_name"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// Delete removes an item from the catalog
func (h *CatalogHandler) Delete(c *gin.Context) {
	item, err := h.catalogService.GetItem(c.Request.Context(), c.Param("item_name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.catalogService.DeleteItem(c.Request.Context(), item.ID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
