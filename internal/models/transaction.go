package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions row.
type Transaction struct {
	TransactionID         int64           `db:"id"`
	Note                  string          `db:"note"`
	Payee                 string          `db:"payee"`
	DateCreated           string          `db:"date_created"`
	Amount                decimal.Decimal `db:"amount"`
	CategoryID            int64           `db:"category_id"`
	Income                bool            `db:"income"`
	TransactionTypeID     int64           `db:"transaction_type_id"`
	TransferCategoryID    sql.NullInt64   `db:"transfer_category_id"`
	TransferTransactionID sql.NullInt64   `db:"transfer_transaction_id"`
	BudgetAccountID       int64           `db:"budget_account_id"`
}
