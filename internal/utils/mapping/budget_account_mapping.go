package mapping

import (
	"github.com/SscSPs/envelope_budget/internal/core/domain"
	"github.com/SscSPs/envelope_budget/internal/models"
)

// ToModelBudgetAccount converts a domain BudgetAccount to its row
func ToModelBudgetAccount(d domain.BudgetAccount) models.BudgetAccount {
	return models.BudgetAccount{
		BudgetAccountID: d.BudgetAccountID,
		FiledAs:         d.FiledAs,
		DateCreated:     domain.FormatTimestamp(d.DateCreated),
	}
}

// ToDomainBudgetAccount converts a budget_accounts row to a domain BudgetAccount
func ToDomainBudgetAccount(m models.BudgetAccount) domain.BudgetAccount {
	return domain.BudgetAccount{
		BudgetAccountID: m.BudgetAccountID,
		FiledAs:         m.FiledAs,
		DateCreated:     domain.ParseTimestamp(m.DateCreated),
	}
}
