package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/envelope_budget/internal/core/ports/services"
	"github.com/SscSPs/envelope_budget/internal/dto"
	"github.com/SscSPs/envelope_budget/internal/middleware"
	"github.com/SscSPs/envelope_budget/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.BudgetingSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.BudgetingSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.BudgetingSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.PATCH("/:id", h.updateTransaction)
	}
}

// createTransaction godoc
// @Summary Record an income or expense
// @Description Records a transaction in a category of the current budget. Income is only accepted by the default category.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 422 {object} map[string]string "Income outside the default category"
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Invalid request format", err)
		return
	}

	logger = logger.With(slog.String("category", req.Category), slog.String("type", req.Type))
	logger.Info("Received request to create transaction", slog.String("amount", req.Amount.String()))

	builder, err := h.transactionService.NewTransactionToCategory(c.Request.Context(), req.Category)
	if err != nil {
		respondError(c, logger, "create transaction", err)
		return
	}

	if req.Type == "Income" {
		builder = builder.Income(req.Amount)
	} else {
		builder = builder.Expense(req.Amount)
	}
	builder = builder.Payee(req.Payee).Note(req.Note)
	if req.Date != "" {
		builder = builder.OnDate(req.Date)
	}

	txn, err := builder.Done(c.Request.Context())
	if err != nil {
		respondError(c, logger, "create transaction", err)
		return
	}

	logger.Info("Transaction created successfully", slog.Int64("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions of the current budget
// @Description Newest first. Pass nextToken from the previous page to continue.
// @Tags transactions
// @Produce  json
// @Param   categoryID query int false "Only this category"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Continuation token"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, "Invalid query parameters", err)
		return
	}
	if params.NextToken != nil && *params.NextToken != "" {
		if _, _, err := pagination.DecodeToken(*params.NextToken); err != nil {
			badRequest(c, logger, "Invalid nextToken", err)
			return
		}
	}

	txns, nextToken, err := h.transactionService.Transactions(c.Request.Context(), params.CategoryID, params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger, "list transactions", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, nextToken))
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, logger, "Invalid transaction ID", err)
		return
	}

	txn, err := h.transactionService.Transaction(c.Request.Context(), transactionID)
	if err != nil {
		respondError(c, logger, "get transaction", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Edit a recorded transaction
// @Description Transfer legs only accept payee and note edits.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/{id} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, logger, "Invalid transaction ID", err)
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Invalid request format", err)
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), transactionID, req.ToDomainTransactionUpdate())
	if err != nil {
		respondError(c, logger, "update transaction", err)
		return
	}

	logger.Info("Transaction updated successfully", slog.Int64("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
