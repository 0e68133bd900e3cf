package services

import (
	"context"
	"strings"
	"time"

	"github.com/SscSPs/envelope_budget/internal/apperrors"
	"github.com/SscSPs/envelope_budget/internal/core/domain"
	portssvc "github.com/SscSPs/envelope_budget/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// transactionBuilder is a value type; every setter returns a modified copy.
type transactionBuilder struct {
	svc       *BudgetingService
	accountID int64
	category  domain.Category

	txType    domain.TransactionType
	amount    decimal.Decimal
	amountSet bool
	payee     string
	note      string
	date      time.Time
}

var _ portssvc.TransactionBuilder = transactionBuilder{}

func (b transactionBuilder) Expense(amount decimal.Decimal) portssvc.TransactionBuilder {
	b.txType = domain.Expense
	b.amount = amount
	b.amountSet = true
	return b
}

func (b transactionBuilder) Income(amount decimal.Decimal) portssvc.TransactionBuilder {
	b.txType = domain.Income
	b.amount = amount
	b.amountSet = true
	return b
}

func (b transactionBuilder) Payee(payee string) portssvc.TransactionBuilder {
	b.payee = strings.TrimSpace(payee)
	return b
}

func (b transactionBuilder) Note(note string) portssvc.TransactionBuilder {
	b.note = strings.TrimSpace(note)
	return b
}

func (b transactionBuilder) On(date time.Time) portssvc.TransactionBuilder {
	b.date = date
	return b
}

func (b transactionBuilder) OnDate(date string) portssvc.TransactionBuilder {
	b.date = domain.ParseTimestamp(date)
	return b
}

// build validates the accumulated fields and produces the row to store.
func (b transactionBuilder) build(now time.Time) (domain.Transaction, error) {
	if !b.amountSet || !b.txType.Valid() {
		return domain.Transaction{}, apperrors.Newf(apperrors.CodeMissingTransactionFields,
			"amount and type are required for a transaction in %s", b.category.Name)
	}
	if !b.amount.IsPositive() {
		return domain.Transaction{}, apperrors.Newf(apperrors.CodeInvalidAmount,
			"amount must be greater than zero, got %s", b.amount)
	}
	if b.txType.IsIncome() && !b.category.IsDefault {
		return domain.Transaction{}, apperrors.Newf(apperrors.CodeOnlyDefaultCategoryCanHaveIncome,
			"cannot record income in %s", b.category.Name)
	}

	date := b.date
	if date.IsZero() {
		date = now
	}

	return domain.Transaction{
		Note:            b.note,
		Payee:           b.payee,
		DateCreated:     storageTime(date),
		Amount:          b.txType.Signed(b.amount),
		CategoryID:      b.category.CategoryID,
		TransactionType: b.txType,
		BudgetAccountID: b.accountID,
	}, nil
}

// Done validates and persists the transaction.
func (b transactionBuilder) Done(ctx context.Context) (*domain.Transaction, error) {
	if b.svc == nil {
		return nil, apperrors.Newf(apperrors.CodeMissingTransactionFields, "builder is not bound to a category")
	}
	return b.svc.recordTransaction(ctx, b)
}

// storageTime normalises t to what survives a round trip through the store.
func storageTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
