package sqldb

import (
	"context"
	"strconv"

	"github.com/SscSPs/envelope_budget/internal/apperrors"
	"github.com/SscSPs/envelope_budget/internal/core/domain"
	portsrepo "github.com/SscSPs/envelope_budget/internal/core/ports/repositories"
	"github.com/SscSPs/envelope_budget/internal/models"
	"github.com/SscSPs/envelope_budget/internal/utils/mapping"
)

type BudgetAccountRepository struct {
	dialect Dialect
}

// newBudgetAccountRepository creates a new repository for budget account data.
func newBudgetAccountRepository(dialect Dialect) *BudgetAccountRepository {
	return &BudgetAccountRepository{dialect: dialect}
}

// Ensure BudgetAccountRepository implements portsrepo.BudgetAccountRepositoryFacade
var _ portsrepo.BudgetAccountRepositoryFacade = (*BudgetAccountRepository)(nil)

const budgetAccountColumns = `id, filed_as, date_created`

// SaveBudgetAccount inserts a new budget account. A duplicate name fails with FAILED_TO_CREATE_BUDGET.
func (r *BudgetAccountRepository) SaveBudgetAccount(ctx context.Context, q portsrepo.Querier, account domain.BudgetAccount) (*domain.BudgetAccount, error) {
	modelAcc := mapping.ToModelBudgetAccount(account)

	query := r.dialect.Rebind(`
		INSERT INTO budget_accounts (filed_as, date_created)
		VALUES (?, ?)
		RETURNING id;
	`)
	err := q.QueryRowContext(ctx, query, modelAcc.FiledAs, modelAcc.DateCreated).Scan(&modelAcc.BudgetAccountID)
	if err != nil {
		return nil, classify(err, writeErrorCodes{
			unique: apperrors.CodeFailedToCreateBudget,
			other:  apperrors.CodeFailedToCreateBudget,
		}, "budget account "+account.FiledAs)
	}

	saved := mapping.ToDomainBudgetAccount(modelAcc)
	return &saved, nil
}

// FindBudgetAccountByID retrieves a budget account by its id.
func (r *BudgetAccountRepository) FindBudgetAccountByID(ctx context.Context, q portsrepo.Querier, budgetAccountID int64) (*domain.BudgetAccount, error) {
	query := r.dialect.Rebind(`SELECT ` + budgetAccountColumns + ` FROM budget_accounts WHERE id = ?;`)

	var m models.BudgetAccount
	err := q.QueryRowContext(ctx, query, budgetAccountID).Scan(&m.BudgetAccountID, &m.FiledAs, &m.DateCreated)
	if err != nil {
		return nil, readError(err, apperrors.CodeBudgetAccountNotFound, "budget account id "+strconv.FormatInt(budgetAccountID, 10))
	}

	acc := mapping.ToDomainBudgetAccount(m)
	return &acc, nil
}

// FindBudgetAccountByName retrieves a budget account by its unique name.
func (r *BudgetAccountRepository) FindBudgetAccountByName(ctx context.Context, q portsrepo.Querier, filedAs string) (*domain.BudgetAccount, error) {
	query := r.dialect.Rebind(`SELECT ` + budgetAccountColumns + ` FROM budget_accounts WHERE filed_as = ?;`)

	var m models.BudgetAccount
	err := q.QueryRowContext(ctx, query, filedAs).Scan(&m.BudgetAccountID, &m.FiledAs, &m.DateCreated)
	if err != nil {
		return nil, readError(err, apperrors.CodeBudgetAccountNotFound, "budget account "+filedAs)
	}

	acc := mapping.ToDomainBudgetAccount(m)
	return &acc, nil
}

// ListBudgetAccounts retrieves all budget accounts ordered by name.
func (r *BudgetAccountRepository) ListBudgetAccounts(ctx context.Context, q portsrepo.Querier) ([]domain.BudgetAccount, error) {
	query := `SELECT ` + budgetAccountColumns + ` FROM budget_accounts ORDER BY filed_as;`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "failed to query budget accounts", err)
	}
	defer rows.Close()

	accounts := []domain.BudgetAccount{}
	for rows.Next() {
		var m models.BudgetAccount
		if err := rows.Scan(&m.BudgetAccountID, &m.FiledAs, &m.DateCreated); err != nil {
			return nil, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "failed to scan budget account row", err)
		}
		accounts = append(accounts, mapping.ToDomainBudgetAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "error iterating budget account rows", err)
	}
	return accounts, nil
}
