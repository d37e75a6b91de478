package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	financeapp "github.com/papersupply/backend/internal/application/finance"
)

// FinanceHandler handles ledger and reporting endpoints
type FinanceHandler struct {
	BaseHandler
	financialService *financeapp.Service
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financialService *financeapp.Service) *FinanceHandler {
	return &FinanceHandler{financialService: financialService}
}

// RegisterRoutes registers all finance routes
func (h *FinanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	finance := rg.Group("/finance")
	{
		finance.GET("/report", h.Report)
		finance.GET("/cash-balance", h.CashBalance)
		finance.GET("/stock-level", h.StockLevel)
		finance.GET("/inventory-value", h.InventoryValue)
		finance.GET("/summary", h.PeriodSummary)
		finance.POST("/transactions", h.RecordTransaction)
	}
}

// parseTimeQuery reads a time query parameter, accepting RFC 3339 or a
// plain date. Empty values fall back to the given default.
func parseTimeQuery(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Report builds the full financial snapshot
func (h *FinanceHandler) Report(c *gin.Context) {
	asOf, ok := parseTimeQuery(c, "as_of", time.Now().UTC())
	if !ok {
		h.BadRequest(c, "query parameter 'as_of' must be RFC 3339 or YYYY-MM-DD")
		return
	}

	report, err := h.financialService.GenerateReport(c.Request.Context(), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// CashBalance replays the ledger into a cash position
func (h *FinanceHandler) CashBalance(c *gin.Context) {
	asOf, ok := parseTimeQuery(c, "as_of", time.Now().UTC())
	if !ok {
		h.BadRequest(c, "query parameter 'as_of' must be RFC 3339 or YYYY-MM-DD")
		return
	}

	balance, err := h.financialService.CashBalance(c.Request.Context(), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"as_of": asOf, "cash_balance": balance})
}

// StockLevel replays the ledger into a stock count for one item
func (h *FinanceHandler) StockLevel(c *gin.Context) {
	itemName := c.Query("item")
	if itemName == "" {
		h.BadRequest(c, "query parameter 'item' is required")
		return
	}

	asOf, ok := parseTimeQuery(c, "as_of", time.Now().UTC())
	if !ok {
		h.BadRequest(c, "query parameter 'as_of' must be RFC 3339 or YYYY-MM-DD")
		return
	}

	level, err := h.financialService.StockLevel(c.Request.Context(), itemName, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"item_name": itemName, "as_of": asOf, "stock_level": level})
}

// InventoryValue prices current stock at catalog prices
func (h *FinanceHandler) InventoryValue(c *gin.Context) {
	value, err := h.financialService.InventoryValue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"inventory_value": value})
}

// PeriodSummary aggregates revenue and expenses over a date range
func (h *FinanceHandler) PeriodSummary(c *gin.Context) {
	from, ok := parseTimeQuery(c, "from", time.Time{})
	if !ok || from.IsZero() {
		h.BadRequest(c, "query parameter 'from' is required as RFC 3339 or YYYY-MM-DD")
		return
	}

	to, ok := parseTimeQuery(c, "to", time.Now().UTC())
	if !ok {
		h.BadRequest(c, "query parameter 'to' must be RFC 3339 or YYYY-MM-DD")
		return
	}

	summary, err := h.financialService.PeriodSummary(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// RecordTransaction records an outgoing cash payment
func (h *FinanceHandler) RecordTransaction(c *gin.Context) {
	var req financeapp.CashTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.financialService.RecordCashTransaction(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{"recorded": true})
}
