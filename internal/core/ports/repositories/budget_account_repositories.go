package repositories

import (
	"context"

	"github.com/SscSPs/envelope_budget/internal/core/domain"
)

// BudgetAccountReader defines read operations for budget account data
type BudgetAccountReader interface {
	// FindBudgetAccountByID retrieves a budget account by its id.
	FindBudgetAccountByID(ctx context.Context, q Querier, budgetAccountID int64) (*domain.BudgetAccount, error)

	// FindBudgetAccountByName retrieves a budget account by its unique name.
	FindBudgetAccountByName(ctx context.Context, q Querier, filedAs string) (*domain.BudgetAccount, error)

	// ListBudgetAccounts retrieves all budget accounts ordered by name.
	ListBudgetAccounts(ctx context.Context, q Querier) ([]domain.BudgetAccount, error)
}

// BudgetAccountWriter defines write operations for budget account data
type BudgetAccountWriter interface {
	// SaveBudgetAccount persists a new budget account and returns it with its generated id.
	SaveBudgetAccount(ctx context.Context, q Querier, account domain.BudgetAccount) (*domain.BudgetAccount, error)
}

// BudgetAccountRepositoryFacade combines all budget account repository interfaces
type BudgetAccountRepositoryFacade interface {
	BudgetAccountReader
	BudgetAccountWriter
}
