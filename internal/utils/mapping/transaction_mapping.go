package mapping

import (
	"database/sql"

	"github.com/SscSPs/envelope_budget/internal/core/domain"
	"github.com/SscSPs/envelope_budget/internal/models"
)

// ToModelTransaction converts a domain Transaction to its row
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:         d.TransactionID,
		Note:                  d.Note,
		Payee:                 d.Payee,
		DateCreated:           domain.FormatTimestamp(d.DateCreated),
		Amount:                d.Amount,
		CategoryID:            d.CategoryID,
		Income:                d.TransactionType.IsIncome(),
		TransactionTypeID:     int64(d.TransactionType),
		TransferCategoryID:    toNullInt64(d.TransferCategoryID),
		TransferTransactionID: toNullInt64(d.TransferTransactionID),
		BudgetAccountID:       d.BudgetAccountID,
	}
}

// ToDomainTransaction converts a transactions row to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:         m.TransactionID,
		Note:                  m.Note,
		Payee:                 m.Payee,
		DateCreated:           domain.ParseTimestamp(m.DateCreated),
		Amount:                m.Amount,
		CategoryID:            m.CategoryID,
		TransactionType:       domain.TransactionType(m.TransactionTypeID),
		TransferCategoryID:    fromNullInt64(m.TransferCategoryID),
		TransferTransactionID: fromNullInt64(m.TransferTransactionID),
		BudgetAccountID:       m.BudgetAccountID,
	}
}

// ToDomainTransactionSlice converts a slice of rows to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

func toNullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func fromNullInt64(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
