package domain

import "github.com/shopspring/decimal"

// DefaultCategoryName is the display name given to the default category of every budget account.
// The default category is identified by IsDefault, never by this name.
const DefaultCategoryName = "Unallocated"

// Category is an envelope holding an allocation target. Its spendable amount is its
// balance, derived from transactions; Allocated is a stored target only.
type Category struct {
	CategoryID      int64           `json:"categoryID"`
	BudgetAccountID int64           `json:"budgetAccountID"`
	Name            string          `json:"name"`
	Allocated       decimal.Decimal `json:"allocated"`
	IsDefault       bool            `json:"isDefault"`
}

// CategoryTotals holds the per-type sums of a category's transactions.
type CategoryTotals struct {
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	TransferIn  decimal.Decimal `json:"transferIn"`
	TransferOut decimal.Decimal `json:"transferOut"`
}

// Balance is the sum of all transaction amounts of the category.
func (t CategoryTotals) Balance() decimal.Decimal {
	return t.Income.Add(t.Expense).Add(t.TransferIn).Add(t.TransferOut)
}

// Add accumulates a signed amount into the bucket for its transaction type.
func (t *CategoryTotals) Add(txType TransactionType, amount decimal.Decimal) {
	switch txType {
	case Income:
		t.Income = t.Income.Add(amount)
	case Expense:
		t.Expense = t.Expense.Add(amount)
	case TransferIn:
		t.TransferIn = t.TransferIn.Add(amount)
	case TransferOut:
		t.TransferOut = t.TransferOut.Add(amount)
	}
}

// CategorySummary is a category together with its derived figures.
type CategorySummary struct {
	Category
	CategoryTotals
	Balance decimal.Decimal `json:"balance"`
}

// Available is what can still be spent from the envelope.
func (s CategorySummary) Available() decimal.Decimal {
	return s.Balance
}
