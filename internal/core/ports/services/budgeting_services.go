package services

import (
	"context"
	"time"

	"github.com/SscSPs/envelope_budget/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetAccountSvc defines operations on budget accounts and the current-account selector.
type BudgetAccountSvc interface {
	// NewBudget creates a budget account with its default category and an initial
	// income transaction, and makes it the current account.
	NewBudget(ctx context.Context, name string, initialAmount decimal.Decimal) (*domain.BudgetAccount, error)

	// SwitchBudgetAccount makes the named budget account current.
	SwitchBudgetAccount(ctx context.Context, name string) (*domain.BudgetAccount, error)

	// CurrentBudgetAccount returns the selected account or BUDGET_ACCOUNT_NOT_SELECTED.
	CurrentBudgetAccount(ctx context.Context) (*domain.BudgetAccount, error)

	ListBudgetAccounts(ctx context.Context) ([]domain.BudgetAccount, error)
}

// CategorySvc defines envelope management scoped to the current account.
type CategorySvc interface {
	// CreateCategory creates an envelope. When transfer is set the allocation is moved
	// from the default category in the same unit of work.
	CreateCategory(ctx context.Context, name string, allocate decimal.Decimal, transfer bool) (*domain.Category, error)

	Categories(ctx context.Context) ([]domain.Category, error)

	// DefaultCategory returns the current account's default category, located by its flag.
	DefaultCategory(ctx context.Context) (*domain.Category, error)

	CategorySummary(ctx context.Context, name string) (*domain.CategorySummary, error)
	CategoryBalance(ctx context.Context, name string) (decimal.Decimal, error)
	UpdateCategory(ctx context.Context, categoryID int64, update domain.CategoryUpdate) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID int64) error
}

// FundingSvc defines money movement between envelopes.
type FundingSvc interface {
	// TransferFund moves amount from src to dest as a linked TransferOut/TransferIn pair.
	TransferFund(ctx context.Context, src, dest string, amount decimal.Decimal) error

	// CalculateAmountToFund reports how much src can move into dest to reach its allocation.
	// An empty src means the default category.
	CalculateAmountToFund(ctx context.Context, src, dest string, asMuchPossible bool) (decimal.Decimal, error)

	// FundAllFromUnallocated funds category from the default category and returns the amount moved.
	FundAllFromUnallocated(ctx context.Context, category string, asMuchPossible bool) (decimal.Decimal, error)
}

// TransactionSvc defines transaction recording and retrieval.
type TransactionSvc interface {
	// NewTransactionToCategory returns a builder bound to the current account and the named category.
	NewTransactionToCategory(ctx context.Context, categoryName string) (TransactionBuilder, error)

	// Transactions lists the current account's transactions newest first using token-based pagination.
	Transactions(ctx context.Context, categoryID *int64, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	Transaction(ctx context.Context, transactionID int64) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID int64, update domain.TransactionUpdate) (*domain.Transaction, error)
}

// ReportingSvc defines aggregate queries over the current account.
type ReportingSvc interface {
	ActualTotalBalance(ctx context.Context) (decimal.Decimal, error)
	UncategorizedBalance(ctx context.Context) (decimal.Decimal, error)

	// TotalIncome sums income, of one category when categoryName is set.
	TotalIncome(ctx context.Context, categoryName *string) (decimal.Decimal, error)

	// TotalExpense sums expenses (negative), of one category when categoryName is set.
	TotalExpense(ctx context.Context, categoryName *string) (decimal.Decimal, error)

	TotalAllocated(ctx context.Context) (decimal.Decimal, error)
	Summary(ctx context.Context) (*domain.BudgetSummary, error)
}

// BudgetingSvcFacade combines all budgeting service interfaces
// This is the facade the HTTP layer and any other caller use
type BudgetingSvcFacade interface {
	BudgetAccountSvc
	CategorySvc
	FundingSvc
	TransactionSvc
	ReportingSvc
}

// TransactionBuilder assembles one transaction for a bound category and account.
// Every setter returns a new builder; Done validates and persists.
type TransactionBuilder interface {
	Expense(amount decimal.Decimal) TransactionBuilder
	Income(amount decimal.Decimal) TransactionBuilder
	Payee(payee string) TransactionBuilder
	Note(note string) TransactionBuilder
	On(date time.Time) TransactionBuilder

	// OnDate sets the date from text; unparsable input falls back to the Unix epoch.
	OnDate(date string) TransactionBuilder

	Done(ctx context.Context) (*domain.Transaction, error)
}
