package dto

import (
	"time"

	"github.com/SscSPs/envelope_budget/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a new budget account.
type CreateBudgetRequest struct {
	Name          string          `json:"name" binding:"required,max=100"`
	InitialAmount decimal.Decimal `json:"initialAmount" binding:"gte=0"`
}

// SwitchBudgetRequest selects the current budget account by name.
type SwitchBudgetRequest struct {
	Name string `json:"name" binding:"required"`
}

// BudgetAccountResponse defines the data returned for a budget account.
type BudgetAccountResponse struct {
	BudgetAccountID int64     `json:"budgetAccountID"`
	Name            string    `json:"name"`
	DateCreated     time.Time `json:"dateCreated"`
}

// BudgetSummaryResponse defines the aggregates returned for the current budget account.
type BudgetSummaryResponse struct {
	BudgetAccount  BudgetAccountResponse `json:"budgetAccount"`
	ActualTotal    decimal.Decimal       `json:"actualTotal"`
	Uncategorized  decimal.Decimal       `json:"uncategorized"`
	TotalIncome    decimal.Decimal       `json:"totalIncome"`
	TotalExpense   decimal.Decimal       `json:"totalExpense"`
	TotalAllocated decimal.Decimal       `json:"totalAllocated"`
}

// ToBudgetAccountResponse converts a domain.BudgetAccount to BudgetAccountResponse DTO
func ToBudgetAccountResponse(acc *domain.BudgetAccount) BudgetAccountResponse {
	return BudgetAccountResponse{
		BudgetAccountID: acc.BudgetAccountID,
		Name:            acc.FiledAs,
		DateCreated:     acc.DateCreated,
	}
}

// ToBudgetAccountListResponse converts a slice of domain.BudgetAccount
func ToBudgetAccountListResponse(accounts []domain.BudgetAccount) []BudgetAccountResponse {
	list := make([]BudgetAccountResponse, len(accounts))
	for i := range accounts {
		list[i] = ToBudgetAccountResponse(&accounts[i])
	}
	return list
}

// ToBudgetSummaryResponse converts a domain.BudgetSummary to BudgetSummaryResponse DTO
func ToBudgetSummaryResponse(s *domain.BudgetSummary) BudgetSummaryResponse {
	return BudgetSummaryResponse{
		BudgetAccount:  ToBudgetAccountResponse(&s.BudgetAccount),
		ActualTotal:    s.ActualTotal,
		Uncategorized:  s.Uncategorized,
		TotalIncome:    s.TotalIncome,
		TotalExpense:   s.TotalExpense,
		TotalAllocated: s.TotalAllocated,
	}
}
