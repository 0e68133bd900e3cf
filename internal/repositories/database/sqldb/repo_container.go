package sqldb

import (
	portsrepo "github.com/SscSPs/envelope_budget/internal/core/ports/repositories"
)

func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	budgetAccountRepo := newBudgetAccountRepository(store.Dialect())
	categoryRepo := newCategoryRepository(store.Dialect())
	transactionRepo := newTransactionRepository(store.Dialect())

	return portsrepo.RepositoryProvider{
		Store:             store,
		BudgetAccountRepo: budgetAccountRepo,
		CategoryRepo:      categoryRepo,
		TransactionRepo:   transactionRepo,
	}
}
