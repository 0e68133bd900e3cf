package models

// BudgetAccount is the budget_accounts row.
type BudgetAccount struct {
	BudgetAccountID int64  `db:"id"`
	FiledAs         string `db:"filed_as"`
	DateCreated     string `db:"date_created"`
}
