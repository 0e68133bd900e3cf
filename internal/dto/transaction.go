package dto

import (
	"time"

	"github.com/SscSPs/envelope_budget/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records an income or expense in a category of the current budget.
// Amount is a magnitude; the sign follows Type.
type CreateTransactionRequest struct {
	Category string          `json:"category" binding:"required"`
	Type     string          `json:"type" binding:"required,oneof=Income Expense"`
	Amount   decimal.Decimal `json:"amount" binding:"gt=0"`
	Payee    string          `json:"payee" binding:"max=200"`
	Note     string          `json:"note" binding:"max=500"`
	Date     string          `json:"date"` // optional, "2006-01-02[ 15:04:05[.fraction]]"
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
type UpdateTransactionRequest struct {
	Payee      *string          `json:"payee" binding:"omitempty,max=200"`
	Note       *string          `json:"note" binding:"omitempty,max=500"`
	Amount     *decimal.Decimal `json:"amount" binding:"omitempty,gt=0"`
	CategoryID *int64           `json:"categoryID" binding:"omitempty,gt=0"`
}

// TransferRequest moves funds between two categories of the current budget.
type TransferRequest struct {
	Source      string          `json:"source" binding:"required"`
	Destination string          `json:"destination" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"gt=0"`
}

// ListTransactionsParams defines the query parameters for listing transactions.
type ListTransactionsParams struct {
	CategoryID *int64  `form:"categoryID" binding:"omitempty,gt=0"`
	Limit      int     `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken  *string `form:"nextToken"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID         int64           `json:"transactionID"`
	Note                  string          `json:"note"`
	Payee                 string          `json:"payee"`
	DateCreated           time.Time       `json:"dateCreated"`
	Amount                decimal.Decimal `json:"amount"`
	CategoryID            int64           `json:"categoryID"`
	TransactionType       string          `json:"transactionType"`
	TransferCategoryID    *int64          `json:"transferCategoryID,omitempty"`
	TransferTransactionID *int64          `json:"transferTransactionID,omitempty"`
	BudgetAccountID       int64           `json:"budgetAccountID"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToDomainTransactionUpdate converts the request to a partial domain update.
func (r UpdateTransactionRequest) ToDomainTransactionUpdate() domain.TransactionUpdate {
	return domain.TransactionUpdate{
		Payee:      r.Payee,
		Note:       r.Note,
		Amount:     r.Amount,
		CategoryID: r.CategoryID,
	}
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:         t.TransactionID,
		Note:                  t.Note,
		Payee:                 t.Payee,
		DateCreated:           t.DateCreated,
		Amount:                t.Amount,
		CategoryID:            t.CategoryID,
		TransactionType:       t.TransactionType.String(),
		TransferCategoryID:    t.TransferCategoryID,
		TransferTransactionID: t.TransferTransactionID,
		BudgetAccountID:       t.BudgetAccountID,
	}
}

// ToListTransactionsResponse converts a page of domain.Transaction
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	list := make([]TransactionResponse, len(txns))
	for i := range txns {
		list[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: list, NextToken: nextToken}
}
