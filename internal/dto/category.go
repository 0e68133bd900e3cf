package dto

import (
	"github.com/SscSPs/envelope_budget/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest defines the data needed to create a new category.
// With Transfer set, the allocation is moved from the default category immediately.
type CreateCategoryRequest struct {
	Name      string          `json:"name" binding:"required,max=100"`
	Allocated decimal.Decimal `json:"allocated" binding:"gte=0"`
	Transfer  bool            `json:"transfer"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateCategoryRequest struct {
	Name      *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Allocated *decimal.Decimal `json:"allocated" binding:"omitempty,gte=0"`
}

// FundCategoryRequest defines a funding from the default category.
type FundCategoryRequest struct {
	AsMuchPossible bool `json:"asMuchPossible"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID      int64           `json:"categoryID"`
	BudgetAccountID int64           `json:"budgetAccountID"`
	Name            string          `json:"name"`
	Allocated       decimal.Decimal `json:"allocated"`
	IsDefault       bool            `json:"isDefault"`
}

// CategorySummaryResponse adds the derived figures of a category.
type CategorySummaryResponse struct {
	CategoryResponse
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	TransferIn  decimal.Decimal `json:"transferIn"`
	TransferOut decimal.Decimal `json:"transferOut"`
	Balance     decimal.Decimal `json:"balance"`
	Available   decimal.Decimal `json:"available"`
}

// FundingResponse reports an amount computed or moved between two categories.
type FundingResponse struct {
	Source      string          `json:"source"`
	Destination string          `json:"destination"`
	Amount      decimal.Decimal `json:"amount"`
}

// ToDomainCategoryUpdate converts the request to a partial domain update.
func (r UpdateCategoryRequest) ToDomainCategoryUpdate() domain.CategoryUpdate {
	return domain.CategoryUpdate{Name: r.Name, Allocated: r.Allocated}
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:      c.CategoryID,
		BudgetAccountID: c.BudgetAccountID,
		Name:            c.Name,
		Allocated:       c.Allocated,
		IsDefault:       c.IsDefault,
	}
}

// ToCategoryListResponse converts a slice of domain.Category
func ToCategoryListResponse(categories []domain.Category) []CategoryResponse {
	list := make([]CategoryResponse, len(categories))
	for i := range categories {
		list[i] = ToCategoryResponse(&categories[i])
	}
	return list
}

// ToCategorySummaryResponse converts a domain.CategorySummary to CategorySummaryResponse DTO
func ToCategorySummaryResponse(s *domain.CategorySummary) CategorySummaryResponse {
	return CategorySummaryResponse{
		CategoryResponse: ToCategoryResponse(&s.Category),
		Income:           s.Income,
		Expense:          s.Expense,
		TransferIn:       s.TransferIn,
		TransferOut:      s.TransferOut,
		Balance:          s.Balance,
		Available:        s.Available(),
	}
}
