package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/envelope_budget/internal/core/ports/services"
	"github.com/SscSPs/envelope_budget/internal/dto"
	"github.com/SscSPs/envelope_budget/internal/middleware"
	"github.com/gin-gonic/gin"
)

// categoryHandler handles HTTP requests related to categories and funding.
type categoryHandler struct {
	categoryService portssvc.BudgetingSvcFacade
}

// newCategoryHandler creates a new categoryHandler.
func newCategoryHandler(cs portssvc.BudgetingSvcFacade) *categoryHandler {
	return &categoryHandler{
		categoryService: cs,
	}
}

// registerCategoryRoutes registers routes related to categories.
// The :category segment is an id for PATCH/DELETE and a name everywhere else.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.BudgetingSvcFacade) {
	h := newCategoryHandler(categoryService)

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
		categories.PATCH("/:category", h.updateCategory)
		categories.DELETE("/:category", h.deleteCategory)
		categories.GET("/:category/summary", h.getCategorySummary)
		categories.GET("/:category/funding", h.calculateFunding)
		categories.POST("/:category/fund", h.fundCategory)
	}

	rg.POST("/transfers", h.transferFund)
}

// createCategory godoc
// @Summary Create a new category
// @Description Creates an envelope in the current budget, optionally funding it from the default category
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Category already exists"
// @Failure 422 {object} map[string]string "Over funding or no budget selected"
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Invalid request format", err)
		return
	}

	logger.Info("Received request to create category",
		slog.String("name", req.Name),
		slog.String("allocated", req.Allocated.String()),
		slog.Bool("transfer", req.Transfer))

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req.Name, req.Allocated, req.Transfer)
	if err != nil {
		respondError(c, logger, "create category", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

func (h *categoryHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	categories, err := h.categoryService.Categories(c.Request.Context())
	if err != nil {
		respondError(c, logger, "list categories", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryListResponse(categories))
}

func (h *categoryHandler) updateCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categoryID, err := strconv.ParseInt(c.Param("category"), 10, 64)
	if err != nil {
		badRequest(c, logger, "Invalid category ID", err)
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Invalid request format", err)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), categoryID, req.ToDomainCategoryUpdate())
	if err != nil {
		respondError(c, logger, "update category", err)
		return
	}

	logger.Info("Category updated successfully", slog.Int64("category_id", categoryID))
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

func (h *categoryHandler) deleteCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	categoryID, err := strconv.ParseInt(c.Param("category"), 10, 64)
	if err != nil {
		badRequest(c, logger, "Invalid category ID", err)
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		respondError(c, logger, "delete category", err)
		return
	}

	logger.Info("Category deleted successfully", slog.Int64("category_id", categoryID))
	c.Status(http.StatusNoContent)
}

// getCategorySummary godoc
// @Summary Balance and totals of a category
// @Tags categories
// @Produce  json
// @Param   category path string true "Category name"
// @Success 200 {object} dto.CategorySummaryResponse
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{category}/summary [get]
func (h *categoryHandler) getCategorySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.categoryService.CategorySummary(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, logger, "summarize category", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategorySummaryResponse(summary))
}

// calculateFunding reports how much ?source (default category when absent) can move into the category.
func (h *categoryHandler) calculateFunding(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	dest := c.Param("category")
	src := c.Query("source")
	asMuch, err := strconv.ParseBool(c.DefaultQuery("asMuchPossible", "false"))
	if err != nil {
		badRequest(c, logger, "Invalid asMuchPossible", err)
		return
	}

	amount, err := h.categoryService.CalculateAmountToFund(c.Request.Context(), src, dest, asMuch)
	if err != nil {
		respondError(c, logger, "calculate funding", err)
		return
	}

	if src == "" {
		defaultCategory, err := h.categoryService.DefaultCategory(c.Request.Context())
		if err != nil {
			respondError(c, logger, "calculate funding", err)
			return
		}
		src = defaultCategory.Name
	}

	c.JSON(http.StatusOK, dto.FundingResponse{Source: src, Destination: dest, Amount: amount})
}

// fundCategory godoc
// @Summary Fund a category from the default category
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   category path string true "Category name"
// @Param   funding body dto.FundCategoryRequest false "Funding options"
// @Success 200 {object} dto.FundingResponse
// @Failure 409 {object} map[string]string "Already funded"
// @Failure 422 {object} map[string]string "Over funding"
// @Router /categories/{category}/fund [post]
func (h *categoryHandler) fundCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	dest := c.Param("category")

	var req dto.FundCategoryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, logger, "Invalid request format", err)
			return
		}
	}

	amount, err := h.categoryService.FundAllFromUnallocated(c.Request.Context(), dest, req.AsMuchPossible)
	if err != nil {
		respondError(c, logger, "fund category", err)
		return
	}

	defaultCategory, err := h.categoryService.DefaultCategory(c.Request.Context())
	if err != nil {
		respondError(c, logger, "fund category", err)
		return
	}

	logger.Info("Category funded", slog.String("category", dest), slog.String("amount", amount.String()))
	c.JSON(http.StatusOK, dto.FundingResponse{Source: defaultCategory.Name, Destination: dest, Amount: amount})
}

// transferFund godoc
// @Summary Move funds between two categories
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.FundingResponse
// @Failure 422 {object} map[string]string "Over funding or invalid amount"
// @Router /transfers [post]
func (h *categoryHandler) transferFund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "Invalid request format", err)
		return
	}

	if err := h.categoryService.TransferFund(c.Request.Context(), req.Source, req.Destination, req.Amount); err != nil {
		respondError(c, logger, "transfer funds", err)
		return
	}

	logger.Info("Funds transferred",
		slog.String("source", req.Source),
		slog.String("destination", req.Destination),
		slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusOK, dto.FundingResponse{Source: req.Source, Destination: req.Destination, Amount: req.Amount})
}
