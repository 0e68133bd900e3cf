package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	Store             TransactionManager
	BudgetAccountRepo BudgetAccountRepositoryFacade
	CategoryRepo      CategoryRepositoryFacade
	TransactionRepo   TransactionRepositoryFacade
}
