package models

import "github.com/shopspring/decimal"

// Category is the categories row. Allocated is stored as exact decimal text.
type Category struct {
	CategoryID      int64           `db:"id"`
	BudgetAccountID int64           `db:"budget_account_id"`
	Name            string          `db:"name"`
	Allocated       decimal.Decimal `db:"allocated"`
	IsDefault       bool            `db:"is_default"`
}
