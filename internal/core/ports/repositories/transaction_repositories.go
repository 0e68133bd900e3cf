package repositories

import (
	"context"

	"github.com/SscSPs/envelope_budget/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its id.
	FindTransactionByID(ctx context.Context, q Querier, transactionID int64) (*domain.Transaction, error)

	// ListTransactions retrieves matching transactions newest first using token-based pagination.
	// It returns the transactions and a token for the next page, if any.
	ListTransactions(ctx context.Context, q Querier, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// SumAmounts adds up the signed amounts of matching transactions. No rows sum to zero.
	SumAmounts(ctx context.Context, q Querier, filter domain.TransactionFilter) (decimal.Decimal, error)

	// CategoryTotals sums a category's transactions per transaction type.
	CategoryTotals(ctx context.Context, q Querier, categoryID int64) (domain.CategoryTotals, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists one transaction and returns it with its generated id.
	SaveTransaction(ctx context.Context, q Querier, txn domain.Transaction) (*domain.Transaction, error)

	// UpdateTransaction applies an administrative edit. Amount is written as given (signed).
	UpdateTransaction(ctx context.Context, q Querier, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
