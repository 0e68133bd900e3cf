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
	"github.com/SscSPs/envelope_budget/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	dialect Dialect
}

// newTransactionRepository creates a new repository for transaction data.
func newTransactionRepository(dialect Dialect) *TransactionRepository {
	return &TransactionRepository{dialect: dialect}
}

// Ensure TransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

const transactionColumns = `id, note, payee, date_created, amount, category_id, income,
	transaction_type_id, transfer_category_id, transfer_transaction_id, budget_account_id`

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Note,
		&m.Payee,
		&m.DateCreated,
		&m.Amount,
		&m.CategoryID,
		&m.Income,
		&m.TransactionTypeID,
		&m.TransferCategoryID,
		&m.TransferTransactionID,
		&m.BudgetAccountID,
	)
	return m, err
}

// filterClause renders the WHERE conditions of a filter with ? placeholders.
func filterClause(filter domain.TransactionFilter) ([]string, []any) {
	conds := []string{}
	args := []any{}
	if filter.BudgetAccountID != nil {
		conds = append(conds, "budget_account_id = ?")
		args = append(args, *filter.BudgetAccountID)
	}
	if filter.CategoryID != nil {
		conds = append(conds, "category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if len(filter.Types) > 0 {
		marks := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			marks[i] = "?"
			args = append(args, int64(t))
		}
		conds = append(conds, "transaction_type_id IN ("+strings.Join(marks, ", ")+")")
	}
	return conds, args
}

func where(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// SaveTransaction inserts one transaction row.
// A missing category or budget account (foreign key) fails with FAILED_TO_CREATE_TRANSACTION.
func (r *TransactionRepository) SaveTransaction(ctx context.Context, q portsrepo.Querier, txn domain.Transaction) (*domain.Transaction, error) {
	m := mapping.ToModelTransaction(txn)

	query := r.dialect.Rebind(`
		INSERT INTO transactions (note, payee, date_created, amount, category_id, income,
			transaction_type_id, transfer_category_id, transfer_transaction_id, budget_account_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id;
	`)
	err := q.QueryRowContext(ctx, query,
		m.Note,
		m.Payee,
		m.DateCreated,
		m.Amount,
		m.CategoryID,
		m.Income,
		m.TransactionTypeID,
		m.TransferCategoryID,
		m.TransferTransactionID,
		m.BudgetAccountID,
	).Scan(&m.TransactionID)
	if err != nil {
		return nil, classify(err, writeErrorCodes{other: apperrors.CodeFailedToCreateTransaction},
			"transaction in category "+strconv.FormatInt(txn.CategoryID, 10))
	}

	saved := mapping.ToDomainTransaction(m)
	return &saved, nil
}

// FindTransactionByID retrieves a transaction by its id.
func (r *TransactionRepository) FindTransactionByID(ctx context.Context, q portsrepo.Querier, transactionID int64) (*domain.Transaction, error) {
	query := r.dialect.Rebind(`SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?;`)

	m, err := scanTransaction(q.QueryRowContext(ctx, query, transactionID))
	if err != nil {
		return nil, readError(err, apperrors.CodeTransactionNotFound, "transaction id "+strconv.FormatInt(transactionID, 10))
	}
	t := mapping.ToDomainTransaction(m)
	return &t, nil
}

// ListTransactions retrieves matching transactions newest first. A limit <= 0 returns every
// matching row and never a token; otherwise the page is cut at limit and the token of the
// last row is returned when more rows follow.
func (r *TransactionRepository) ListTransactions(ctx context.Context, q portsrepo.Querier, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	conds, args := filterClause(filter)

	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "invalid nextToken", decodeErr)
		}
		last := domain.FormatTimestamp(lastDate)
		conds = append(conds, "(date_created < ? OR (date_created = ? AND id < ?))")
		args = append(args, last, last, lastID)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions` + where(conds) + ` ORDER BY date_created DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit+1) // one extra row tells us whether another page exists
	}

	rows, err := q.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, nil, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "failed to query transactions", err)
	}
	defer rows.Close()

	results := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "failed to scan transaction row", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "error iterating transaction rows", err)
	}

	var nextTokenVal *string
	if limit > 0 && len(results) > limit {
		results = results[:limit]
		lastTxn := mapping.ToDomainTransaction(results[limit-1])
		token := pagination.EncodeToken(lastTxn.DateCreated, lastTxn.TransactionID)
		nextTokenVal = &token
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}

// SumAmounts adds up the signed amounts of matching transactions.
// Amounts are summed as decimals here, not by the database, so no precision is lost.
func (r *TransactionRepository) SumAmounts(ctx context.Context, q portsrepo.Querier, filter domain.TransactionFilter) (decimal.Decimal, error) {
	conds, args := filterClause(filter)
	query := r.dialect.Rebind(`SELECT amount FROM transactions` + where(conds) + `;`)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return decimal.Zero, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "failed to sum transactions", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "failed to scan amount", err)
		}
		total = total.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "error iterating amounts", err)
	}
	return total, nil
}

// CategoryTotals sums a category's transactions per transaction type.
func (r *TransactionRepository) CategoryTotals(ctx context.Context, q portsrepo.Querier, categoryID int64) (domain.CategoryTotals, error) {
	query := r.dialect.Rebind(`SELECT transaction_type_id, amount FROM transactions WHERE category_id = ?;`)

	totals := domain.CategoryTotals{}
	rows, err := q.QueryContext(ctx, query, categoryID)
	if err != nil {
		return totals, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "failed to query category totals", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			typeID int64
			amount decimal.Decimal
		)
		if err := rows.Scan(&typeID, &amount); err != nil {
			return domain.CategoryTotals{}, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "failed to scan category total row", err)
		}
		totals.Add(domain.TransactionType(typeID), amount)
	}
	if err := rows.Err(); err != nil {
		return domain.CategoryTotals{}, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "error iterating category total rows", err)
	}
	return totals, nil
}

// UpdateTransaction writes the editable fields of txn (payee, note, amount, category).
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, q portsrepo.Querier, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := r.dialect.Rebind(`
		UPDATE transactions
		SET payee = ?, note = ?, amount = ?, category_id = ?
		WHERE id = ?;
	`)
	ref := "transaction id " + strconv.FormatInt(txn.TransactionID, 10)

	res, err := q.ExecContext(ctx, query, m.Payee, m.Note, m.Amount, m.CategoryID, m.TransactionID)
	if err != nil {
		return classify(err, writeErrorCodes{other: apperrors.CodeTransactionUpdateFailed}, ref)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.New(apperrors.CodeTransactionNotFound, ref, nil)
	}
	return nil
}
