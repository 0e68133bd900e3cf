package mapping

import (
	"github.com/SscSPs/envelope_budget/internal/core/domain"
	"github.com/SscSPs/envelope_budget/internal/models"
)

// ToModelCategory converts a domain Category to its row
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:      d.CategoryID,
		BudgetAccountID: d.BudgetAccountID,
		Name:            d.Name,
		Allocated:       d.Allocated,
		IsDefault:       d.IsDefault,
	}
}

// ToDomainCategory converts a categories row to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:      m.CategoryID,
		BudgetAccountID: m.BudgetAccountID,
		Name:            m.Name,
		Allocated:       m.Allocated,
		IsDefault:       m.IsDefault,
	}
}

// ToDomainCategorySlice converts a slice of rows to domain Categories
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}
