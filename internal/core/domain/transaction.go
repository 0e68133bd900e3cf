package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction. Values match the transaction_types lookup table.
type TransactionType int

const (
	Income      TransactionType = 1
	Expense     TransactionType = 2
	TransferIn  TransactionType = 3
	TransferOut TransactionType = 4
)

var transactionTypeNames = map[TransactionType]string{
	Income:      "Income",
	Expense:     "Expense",
	TransferIn:  "TransferIn",
	TransferOut: "TransferOut",
}

func (t TransactionType) String() string {
	if name, ok := transactionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TransactionType(%d)", int(t))
}

// Valid reports whether t is one of the four known types.
func (t TransactionType) Valid() bool {
	_, ok := transactionTypeNames[t]
	return ok
}

// IsTransfer reports whether t is one leg of a fund transfer.
func (t TransactionType) IsTransfer() bool {
	return t == TransferIn || t == TransferOut
}

// IsIncome reports whether amounts of this type add money to the ledger.
func (t TransactionType) IsIncome() bool {
	return t == Income
}

// Signed applies the sign convention of t to a positive magnitude:
// Income and TransferIn are positive, Expense and TransferOut negative.
func (t TransactionType) Signed(magnitude decimal.Decimal) decimal.Decimal {
	abs := magnitude.Abs()
	if t == Expense || t == TransferOut {
		return abs.Neg()
	}
	return abs
}

// ParseTransactionType maps a type name back to its value.
func ParseTransactionType(name string) (TransactionType, bool) {
	for t, n := range transactionTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

func (t TransactionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TransactionType) UnmarshalText(b []byte) error {
	parsed, ok := ParseTransactionType(string(b))
	if !ok {
		return fmt.Errorf("unknown transaction type %q", string(b))
	}
	*t = parsed
	return nil
}

// Transaction is a single monetary movement into or out of one category of one budget account.
type Transaction struct {
	TransactionID         int64           `json:"transactionID"`
	Note                  string          `json:"note"`
	Payee                 string          `json:"payee"`
	DateCreated           time.Time       `json:"dateCreated"`
	Amount                decimal.Decimal `json:"amount"` // signed
	CategoryID            int64           `json:"categoryID"`
	TransactionType       TransactionType `json:"transactionType"`
	TransferCategoryID    *int64          `json:"transferCategoryID,omitempty"`    // counterpart category of a transfer leg
	TransferTransactionID *int64          `json:"transferTransactionID,omitempty"` // out-leg id, set on the in-leg
	BudgetAccountID       int64           `json:"budgetAccountID"`
}

// TransactionFilter narrows transaction queries. Nil fields do not filter.
type TransactionFilter struct {
	BudgetAccountID *int64
	CategoryID      *int64
	Types           []TransactionType
}

// TransactionUpdate carries an administrative edit. Nil fields are left untouched.
// Amount is a magnitude; the stored sign follows the transaction type.
type TransactionUpdate struct {
	Payee      *string
	Note       *string
	Amount     *decimal.Decimal
	CategoryID *int64
}

// CategoryUpdate carries a partial category edit.
type CategoryUpdate struct {
	Name      *string
	Allocated *decimal.Decimal
}
