package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/envelope_budget/internal/core/ports/services"
	"github.com/SscSPs/envelope_budget/internal/middleware"
	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	reportingService portssvc.BudgetingSvcFacade
}

func newReportingHandler(rs portssvc.BudgetingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.BudgetingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/totals", h.getTotals)
	}
}

// getTotals returns income and expense sums of the current budget, or of ?category when given.
func (h *reportingHandler) getTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var category *string
	if name, ok := c.GetQuery("category"); ok && name != "" {
		category = &name
	}

	income, err := h.reportingService.TotalIncome(c.Request.Context(), category)
	if err != nil {
		respondError(c, logger, "compute income", err)
		return
	}
	expense, err := h.reportingService.TotalExpense(c.Request.Context(), category)
	if err != nil {
		respondError(c, logger, "compute expense", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"income": income, "expense": expense, "net": income.Add(expense)})
}
