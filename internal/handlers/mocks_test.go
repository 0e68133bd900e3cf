package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/envelope_budget/internal/core/domain"
	portssvc "github.com/SscSPs/envelope_budget/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock BudgetingService ---
type MockBudgetingService struct {
	mock.Mock
}

func (m *MockBudgetingService) NewBudget(ctx context.Context, name string, initialAmount decimal.Decimal) (*domain.BudgetAccount, error) {
	args := m.Called(ctx, name, initialAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetAccount), args.Error(1)
}
func (m *MockBudgetingService) SwitchBudgetAccount(ctx context.Context, name string) (*domain.BudgetAccount, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetAccount), args.Error(1)
}
func (m *MockBudgetingService) CurrentBudgetAccount(ctx context.Context) (*domain.BudgetAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetAccount), args.Error(1)
}
func (m *MockBudgetingService) ListBudgetAccounts(ctx context.Context) ([]domain.BudgetAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetAccount), args.Error(1)
}
func (m *MockBudgetingService) CreateCategory(ctx context.Context, name string, allocate decimal.Decimal, transfer bool) (*domain.Category, error) {
	args := m.Called(ctx, name, allocate, transfer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockBudgetingService) Categories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockBudgetingService) DefaultCategory(ctx context.Context) (*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockBudgetingService) CategorySummary(ctx context.Context, name string) (*domain.CategorySummary, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategorySummary), args.Error(1)
}
func (m *MockBudgetingService) CategoryBalance(ctx context.Context, name string) (decimal.Decimal, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBudgetingService) UpdateCategory(ctx context.Context, categoryID int64, update domain.CategoryUpdate) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockBudgetingService) DeleteCategory(ctx context.Context, categoryID int64) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}
func (m *MockBudgetingService) TransferFund(ctx context.Context, src, dest string, amount decimal.Decimal) error {
	args := m.Called(ctx, src, dest, amount)
	return args.Error(0)
}
func (m *MockBudgetingService) CalculateAmountToFund(ctx context.Context, src, dest string, asMuchPossible bool) (decimal.Decimal, error) {
	args := m.Called(ctx, src, dest, asMuchPossible)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBudgetingService) FundAllFromUnallocated(ctx context.Context, category string, asMuchPossible bool) (decimal.Decimal, error) {
	args := m.Called(ctx, category, asMuchPossible)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBudgetingService) NewTransactionToCategory(ctx context.Context, categoryName string) (portssvc.TransactionBuilder, error) {
	args := m.Called(ctx, categoryName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(portssvc.TransactionBuilder), args.Error(1)
}
func (m *MockBudgetingService) Transactions(ctx context.Context, categoryID *int64, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, categoryID, limit, nextToken)
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}
func (m *MockBudgetingService) Transaction(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockBudgetingService) UpdateTransaction(ctx context.Context, transactionID int64, update domain.TransactionUpdate) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockBudgetingService) ActualTotalBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBudgetingService) UncategorizedBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBudgetingService) TotalIncome(ctx context.Context, categoryName *string) (decimal.Decimal, error) {
	args := m.Called(ctx, categoryName)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBudgetingService) TotalExpense(ctx context.Context, categoryName *string) (decimal.Decimal, error) {
	args := m.Called(ctx, categoryName)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBudgetingService) TotalAllocated(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBudgetingService) Summary(ctx context.Context) (*domain.BudgetSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetSummary), args.Error(1)
}

var _ portssvc.BudgetingSvcFacade = (*MockBudgetingService)(nil)

// --- Mock TransactionBuilder ---
// Setters are recorded and return the same mock so chains can be asserted.
type MockTransactionBuilder struct {
	mock.Mock
}

func (m *MockTransactionBuilder) Expense(amount decimal.Decimal) portssvc.TransactionBuilder {
	m.Called(amount)
	return m
}
func (m *MockTransactionBuilder) Income(amount decimal.Decimal) portssvc.TransactionBuilder {
	m.Called(amount)
	return m
}
func (m *MockTransactionBuilder) Payee(payee string) portssvc.TransactionBuilder {
	m.Called(payee)
	return m
}
func (m *MockTransactionBuilder) Note(note string) portssvc.TransactionBuilder {
	m.Called(note)
	return m
}
func (m *MockTransactionBuilder) On(date time.Time) portssvc.TransactionBuilder {
	m.Called(date)
	return m
}
func (m *MockTransactionBuilder) OnDate(date string) portssvc.TransactionBuilder {
	m.Called(date)
	return m
}
func (m *MockTransactionBuilder) Done(ctx context.Context) (*domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

var _ portssvc.TransactionBuilder = (*MockTransactionBuilder)(nil)
