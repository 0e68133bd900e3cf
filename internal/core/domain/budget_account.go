package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetAccount is a named ledger scope ("wallet", "main") that owns its categories and transactions.
type BudgetAccount struct {
	BudgetAccountID int64     `json:"budgetAccountID"`
	FiledAs         string    `json:"filedAs"` // unique name
	DateCreated     time.Time `json:"dateCreated"`
}

// BudgetSummary holds the account-level aggregates of one budget account.
type BudgetSummary struct {
	BudgetAccount  BudgetAccount   `json:"budgetAccount"`
	ActualTotal    decimal.Decimal `json:"actualTotal"`
	Uncategorized  decimal.Decimal `json:"uncategorized"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`
	TotalAllocated decimal.Decimal `json:"totalAllocated"`
}
