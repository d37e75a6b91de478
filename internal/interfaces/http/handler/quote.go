package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	quotingapp "github.com/papersupply/backend/internal/application/quoting"
	"github.com/papersupply/backend/internal/interfaces/http/dto"
)

// QuoteHandler handles quote-related API endpoints
type QuoteHandler struct {
	BaseHandler
	quotingService *quotingapp.Service
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quotingService *quotingapp.Service) *QuoteHandler {
	return &QuoteHandler{quotingService: quotingService}
}

// RegisterRoutes registers all quote routes
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	{
		quotes.POST("", h.Generate)
		quotes.GET("", h.List)
		quotes.GET("/search", h.Search)
		quotes.POST("/expire", h.Expire)
		quotes.GET("/:quote_id", h.Get)
		quotes.GET("/:quote_id/validate", h.Validate)
		quotes.POST("/:quote_id/accept", h.Accept)
		quotes.POST("/:quote_id/reject", h.Reject)
	}
}

// Generate prices a new quote with bulk discounting
func (h *QuoteHandler) Generate(c *gin.Context) {
	var req quotingapp.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.quotingService.GenerateQuote(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns a single quote by its business identifier
func (h *QuoteHandler) Get(c *gin.Context) {
	resp, err := h.quotingService.GetQuote(c.Request.Context(), c.Param("quote_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns paginated quotes
func (h *QuoteHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	quotes, total, err := h.quotingService.ListQuotes(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, quotes, total, filter.Page, filter.PageSize)
}

// Search finds quotes matching free-form terms
func (h *QuoteHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		h.BadRequest(c, "query parameter 'q' is required")
		return
	}

	quotes, err := h.quotingService.SearchQuotes(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quotes)
}

// Validate reports whether a quote is still actionable
func (h *QuoteHandler) Validate(c *gin.Context) {
	result, err := h.quotingService.ValidateQuote(c.Request.Context(), c.Param("quote_id"), time.Now().UTC())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Expire sweeps pending quotes whose validity has lapsed and returns
// how many were expired
func (h *QuoteHandler) Expire(c *gin.Context) {
	result, err := h.quotingService.ExpireOldQuotes(c.Request.Context(), time.Now().UTC())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Accept marks a pending quote as accepted
func (h *QuoteHandler) Accept(c *gin.Context) {
	resp, err := h.quotingService.AcceptQuote(c.Request.Context(), c.Param("quote_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Reject marks a pending quote as rejected
func (h *QuoteHandler) Reject(c *gin.Context) {
	resp, err := h.quotingService.RejectQuote(c.Request.Context(), c.Param("quote_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
