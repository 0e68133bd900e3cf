package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/envelope_budget/internal/core/ports/services"
	"github.com/SscSPs/envelope_budget/internal/dto"
	"github.com/SscSPs/envelope_budget/internal/middleware"
	"github.com/gin-gonic/gin"
)

// budgetHandler handles HTTP requests related to budget accounts.
type budgetHandler struct {
	budgetService portssvc.BudgetingSvcFacade
}

// newBudgetHandler creates a new budgetHandler.
func newBudgetHandler(bs portssvc.BudgetingSvcFacade) *budgetHandler {
	return &budgetHandler{
		budgetService: bs,
	}
}

// registerBudgetRoutes registers routes related to budget accounts.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetingSvcFacade) {
	h := newBudgetHandler(budgetService)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/current", h.getCurrentBudget)
		budgets.PUT("/current", h.switchBudget)
		budgets.GET("/current/summary", h.getSummary)
	}
}

// createBudget godoc
// @Summary Create a new budget account
// @Description Creates a budget account seeded with an initial balance and makes it current
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} dto.BudgetAccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to create budget"
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Invalid request format", err)
		return
	}

	if subject, ok := middleware.GetSubjectFromContext(c); ok {
		logger = logger.With(slog.String("requested_by", subject))
	}
	logger.Info("Received request to create budget", slog.String("name", req.Name), slog.String("initial_amount", req.InitialAmount.String()))

	acc, err := h.budgetService.NewBudget(c.Request.Context(), req.Name, req.InitialAmount)
	if err != nil {
		respondError(c, logger, "create budget", err)
		return
	}

	logger.Info("Budget created successfully", slog.Int64("budget_account_id", acc.BudgetAccountID))
	c.JSON(http.StatusCreated, dto.ToBudgetAccountResponse(acc))
}

func (h *budgetHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.budgetService.ListBudgetAccounts(c.Request.Context())
	if err != nil {
		respondError(c, logger, "list budgets", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetAccountListResponse(accounts))
}

func (h *budgetHandler) getCurrentBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	acc, err := h.budgetService.CurrentBudgetAccount(c.Request.Context())
	if err != nil {
		respondError(c, logger, "get current budget", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetAccountResponse(acc))
}

// switchBudget godoc
// @Summary Switch the current budget account
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.SwitchBudgetRequest true "Budget name"
// @Success 200 {object} dto.BudgetAccountResponse
// @Failure 404 {object} map[string]string "Budget not found"
// @Router /budgets/current [put]
func (h *budgetHandler) switchBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SwitchBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Invalid request format", err)
		return
	}

	acc, err := h.budgetService.SwitchBudgetAccount(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, logger, "switch budget", err)
		return
	}

	logger.Info("Switched current budget", slog.Int64("budget_account_id", acc.BudgetAccountID))
	c.JSON(http.StatusOK, dto.ToBudgetAccountResponse(acc))
}

// getSummary godoc
// @Summary Aggregates of the current budget account
// @Tags budgets
// @Produce  json
// @Success 200 {object} dto.BudgetSummaryResponse
// @Failure 422 {object} map[string]string "No budget selected"
// @Router /budgets/current/summary [get]
func (h *budgetHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.budgetService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, logger, "summarize budget", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetSummaryResponse(summary))
}
