package sqldb

import (
	"context"
	"strconv"
	"strings"

	"github.com/SscSPs/envelope_budget/internal/apperrors"
	"github.com/SscSPs/envelope_budget/internal/core/domain"
	portsrepo "github.com/SscSPs/envelope_budget/internal/core/ports/repositories"
	"github.com/SscSPs/envelope_budget/internal/models"
	"github.com/SscSPs/envelope_budget/internal/utils/mapping"
)

type CategoryRepository struct {
	dialect Dialect
}

// newCategoryRepository creates a new repository for category data.
func newCategoryRepository(dialect Dialect) *CategoryRepository {
	return &CategoryRepository{dialect: dialect}
}

// Ensure CategoryRepository implements portsrepo.CategoryRepositoryFacade
var _ portsrepo.CategoryRepositoryFacade = (*CategoryRepository)(nil)

const categoryColumns = `id, budget_account_id, name, allocated, is_default`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (models.Category, error) {
	var m models.Category
	err := row.Scan(&m.CategoryID, &m.BudgetAccountID, &m.Name, &m.Allocated, &m.IsDefault)
	return m, err
}

// SaveCategory inserts a new category.
// Unique violation -> CATEGORY_ALREADY_EXISTS, foreign key violation -> FAILED_TO_CREATE_CATEGORY.
func (r *CategoryRepository) SaveCategory(ctx context.Context, q portsrepo.Querier, category domain.Category) (*domain.Category, error) {
	modelCat := mapping.ToModelCategory(category)

	query := r.dialect.Rebind(`
		INSERT INTO categories (budget_account_id, name, allocated, is_default)
		VALUES (?, ?, ?, ?)
		RETURNING id;
	`)
	err := q.QueryRowContext(ctx, query,
		modelCat.BudgetAccountID,
		modelCat.Name,
		modelCat.Allocated,
		modelCat.IsDefault,
	).Scan(&modelCat.CategoryID)
	if err != nil {
		return nil, classify(err, writeErrorCodes{
			unique:     apperrors.CodeCategoryAlreadyExists,
			foreignKey: apperrors.CodeFailedToCreateCategory,
			other:      apperrors.CodeUnspecifiedDatabaseError,
		}, "category "+category.Name)
	}

	saved := mapping.ToDomainCategory(modelCat)
	return &saved, nil
}

// FindCategoryByID retrieves a category by its id.
func (r *CategoryRepository) FindCategoryByID(ctx context.Context, q portsrepo.Querier, categoryID int64) (*domain.Category, error) {
	query := r.dialect.Rebind(`SELECT ` + categoryColumns + ` FROM categories WHERE id = ?;`)

	m, err := scanCategory(q.QueryRowContext(ctx, query, categoryID))
	if err != nil {
		return nil, readError(err, apperrors.CodeCategoryNotFound, "category id "+strconv.FormatInt(categoryID, 10))
	}
	c := mapping.ToDomainCategory(m)
	return &c, nil
}

// FindCategoryByName retrieves a category of a budget account by name.
func (r *CategoryRepository) FindCategoryByName(ctx context.Context, q portsrepo.Querier, budgetAccountID int64, name string) (*domain.Category, error) {
	query := r.dialect.Rebind(`SELECT ` + categoryColumns + ` FROM categories WHERE budget_account_id = ? AND name = ?;`)

	m, err := scanCategory(q.QueryRowContext(ctx, query, budgetAccountID, name))
	if err != nil {
		return nil, readError(err, apperrors.CodeCategoryNotFound, "category "+name)
	}
	c := mapping.ToDomainCategory(m)
	return &c, nil
}

// FindDefaultCategory retrieves the default category of a budget account.
func (r *CategoryRepository) FindDefaultCategory(ctx context.Context, q portsrepo.Querier, budgetAccountID int64) (*domain.Category, error) {
	query := r.dialect.Rebind(`SELECT ` + categoryColumns + ` FROM categories WHERE budget_account_id = ? AND is_default = ?;`)

	m, err := scanCategory(q.QueryRowContext(ctx, query, budgetAccountID, true))
	if err != nil {
		return nil, readError(err, apperrors.CodeCategoryNotFound, "default category of budget account "+strconv.FormatInt(budgetAccountID, 10))
	}
	c := mapping.ToDomainCategory(m)
	return &c, nil
}

// ListCategories retrieves all categories of a budget account, default first then by name.
func (r *CategoryRepository) ListCategories(ctx context.Context, q portsrepo.Querier, budgetAccountID int64) ([]domain.Category, error) {
	query := r.dialect.Rebind(`
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE budget_account_id = ?
		ORDER BY is_default DESC, name;
	`)

	rows, err := q.QueryContext(ctx, query, budgetAccountID)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "failed to query categories", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "failed to scan category row", err)
		}
		categories = append(categories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "error iterating category rows", err)
	}
	return mapping.ToDomainCategorySlice(categories), nil
}

// UpdateCategory applies a partial update. Any storage failure is CATEGORY_UPDATE_FAILED,
// except a name clash which is CATEGORY_ALREADY_EXISTS.
func (r *CategoryRepository) UpdateCategory(ctx context.Context, q portsrepo.Querier, categoryID int64, update domain.CategoryUpdate) error {
	sets := []string{}
	args := []any{}
	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Allocated != nil {
		sets = append(sets, "allocated = ?")
		args = append(args, *update.Allocated)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, categoryID)

	query := r.dialect.Rebind(`UPDATE categories SET ` + strings.Join(sets, ", ") + ` WHERE id = ?;`)
	ref := "category id " + strconv.FormatInt(categoryID, 10)

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(err, writeErrorCodes{
			unique: apperrors.CodeCategoryAlreadyExists,
			other:  apperrors.CodeCategoryUpdateFailed,
		}, ref)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.New(apperrors.CodeCategoryNotFound, ref, nil)
	}
	return nil
}

// DeleteCategory hard deletes a category. A category still referenced by
// transactions fails with CATEGORY_DELETE_FAILED through the foreign key.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, q portsrepo.Querier, categoryID int64) error {
	query := r.dialect.Rebind(`DELETE FROM categories WHERE id = ?;`)
	ref := "category id " + strconv.FormatInt(categoryID, 10)

	res, err := q.ExecContext(ctx, query, categoryID)
	if err != nil {
		return classify(err, writeErrorCodes{other: apperrors.CodeCategoryDeleteFailed}, ref)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.New(apperrors.CodeCategoryNotFound, ref, nil)
	}
	return nil
}
