package repositories

import (
	"context"

	"github.com/SscSPs/envelope_budget/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a category by its id.
	FindCategoryByID(ctx context.Context, q Querier, categoryID int64) (*domain.Category, error)

	// FindCategoryByName retrieves a category of a budget account by name.
	FindCategoryByName(ctx context.Context, q Querier, budgetAccountID int64, name string) (*domain.Category, error)

	// FindDefaultCategory retrieves the default category of a budget account.
	FindDefaultCategory(ctx context.Context, q Querier, budgetAccountID int64) (*domain.Category, error)

	// ListCategories retrieves all categories of a budget account, default first.
	ListCategories(ctx context.Context, q Querier, budgetAccountID int64) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category and returns it with its generated id.
	SaveCategory(ctx context.Context, q Querier, category domain.Category) (*domain.Category, error)

	// UpdateCategory applies a partial update to a category.
	UpdateCategory(ctx context.Context, q Querier, categoryID int64, update domain.CategoryUpdate) error

	// DeleteCategory hard deletes a category.
	DeleteCategory(ctx context.Context, q Querier, categoryID int64) error
}

// CategoryRepositoryFacade combines all category repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
