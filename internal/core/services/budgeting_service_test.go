package services_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/envelope_budget/internal/apperrors"
	"github.com/SscSPs/envelope_budget/internal/core/domain"
	portsrepo "github.com/SscSPs/envelope_budget/internal/core/ports/repositories"
	"github.com/SscSPs/envelope_budget/internal/core/services"
	"github.com/SscSPs/envelope_budget/internal/repositories/database/sqldb"
	"github.com/SscSPs/envelope_budget/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

// openTestRepos migrates a fresh sqlite file and returns repositories over it.
func openTestRepos(t *testing.T) portsrepo.RepositoryProvider {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	require.NoError(t, sqldb.RunMigrations(sqldb.SQLite, database.SQLiteDSN(path), slog.New(slog.DiscardHandler)))

	db, err := database.OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	return sqldb.NewRepositoryProvider(sqldb.NewStore(db, sqldb.SQLite))
}

// tickingClock advances one second per reading so every write gets a distinct date.
func tickingClock() func() time.Time {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

type BudgetingServiceTestSuite struct {
	suite.Suite
	ctx   context.Context
	repos portsrepo.RepositoryProvider
	svc   *services.BudgetingService
}

func (s *BudgetingServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = openTestRepos(s.T())
	s.svc = services.NewBudgetingService(s.repos, services.WithClock(tickingClock()))
}

func TestBudgetingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetingServiceTestSuite))
}

func (s *BudgetingServiceTestSuite) requireCode(err error, code apperrors.Code) {
	s.T().Helper()
	s.Require().Error(err)
	s.Equal(code, apperrors.CodeOf(err), "unexpected error: %v", err)
}

func (s *BudgetingServiceTestSuite) assertDecimal(want string, got decimal.Decimal, msgAndArgs ...any) {
	s.T().Helper()
	s.Truef(dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

func (s *BudgetingServiceTestSuite) balance(name string) decimal.Decimal {
	s.T().Helper()
	b, err := s.svc.CategoryBalance(s.ctx, name)
	s.Require().NoError(err)
	return b
}

func (s *BudgetingServiceTestSuite) uncategorized() decimal.Decimal {
	s.T().Helper()
	b, err := s.svc.UncategorizedBalance(s.ctx)
	s.Require().NoError(err)
	return b
}

func (s *BudgetingServiceTestSuite) actualTotal() decimal.Decimal {
	s.T().Helper()
	b, err := s.svc.ActualTotalBalance(s.ctx)
	s.Require().NoError(err)
	return b
}

func (s *BudgetingServiceTestSuite) newBudget(name, amount string) *domain.BudgetAccount {
	s.T().Helper()
	account, err := s.svc.NewBudget(s.ctx, name, dec(amount))
	s.Require().NoError(err)
	return account
}

func (s *BudgetingServiceTestSuite) createCategory(name, allocate string, transfer bool) *domain.Category {
	s.T().Helper()
	category, err := s.svc.CreateCategory(s.ctx, name, dec(allocate), transfer)
	s.Require().NoError(err)
	return category
}

func (s *BudgetingServiceTestSuite) expense(category, amount string) *domain.Transaction {
	s.T().Helper()
	builder, err := s.svc.NewTransactionToCategory(s.ctx, category)
	s.Require().NoError(err)
	txn, err := builder.Expense(dec(amount)).Payee("Shop").Done(s.ctx)
	s.Require().NoError(err)
	return txn
}

// --- Budget accounts ---

func (s *BudgetingServiceTestSuite) TestNewBudget_SeedsDefaultCategoryAndIncome() {
	account := s.newBudget("main", "10000")
	s.NotZero(account.BudgetAccountID)
	s.Equal("main", account.FiledAs)

	current, err := s.svc.CurrentBudgetAccount(s.ctx)
	s.Require().NoError(err)
	s.Equal(account.BudgetAccountID, current.BudgetAccountID)

	categories, err := s.svc.Categories(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(categories, 1)
	s.True(categories[0].IsDefault)
	s.Equal(domain.DefaultCategoryName, categories[0].Name)

	txns, next, err := s.svc.Transactions(s.ctx, nil, 0, nil)
	s.Require().NoError(err)
	s.Nil(next)
	s.Require().Len(txns, 1)
	s.Equal(domain.Income, txns[0].TransactionType)
	s.Equal("main", txns[0].Payee)
	s.Equal("Initial balance", txns[0].Note)
	s.assertDecimal("10000", txns[0].Amount)

	s.assertDecimal("10000", s.uncategorized())
	s.assertDecimal("10000", s.actualTotal())
}

func (s *BudgetingServiceTestSuite) TestNewBudget_DuplicateNameFails() {
	first := s.newBudget("main", "100")

	_, err := s.svc.NewBudget(s.ctx, "main", dec("50"))
	s.requireCode(err, apperrors.CodeFailedToCreateBudget)
	s.ErrorIs(err, apperrors.ErrFailedToCreateBudget)

	current, err := s.svc.CurrentBudgetAccount(s.ctx)
	s.Require().NoError(err)
	s.Equal(first.BudgetAccountID, current.BudgetAccountID)

	accounts, err := s.svc.ListBudgetAccounts(s.ctx)
	s.Require().NoError(err)
	s.Len(accounts, 1)
}

func (s *BudgetingServiceTestSuite) TestNewBudget_RejectsBadInput() {
	_, err := s.svc.NewBudget(s.ctx, "  ", dec("10"))
	s.requireCode(err, apperrors.CodeFailedToCreateBudget)

	_, err = s.svc.NewBudget(s.ctx, "main", dec("-1"))
	s.requireCode(err, apperrors.CodeInvalidAmount)
}

func (s *BudgetingServiceTestSuite) TestSwitchBudgetAccount() {
	main := s.newBudget("main", "100")
	s.newBudget("wallet", "20")

	switched, err := s.svc.SwitchBudgetAccount(s.ctx, "main")
	s.Require().NoError(err)
	s.Equal(main.BudgetAccountID, switched.BudgetAccountID)

	_, err = s.svc.SwitchBudgetAccount(s.ctx, "missing")
	s.requireCode(err, apperrors.CodeBudgetAccountNotFound)
	s.ErrorIs(err, apperrors.ErrNotFound)

	// a failed switch keeps the previous selection
	current, err := s.svc.CurrentBudgetAccount(s.ctx)
	s.Require().NoError(err)
	s.Equal("main", current.FiledAs)
}

func (s *BudgetingServiceTestSuite) TestOperationsRequireSelectedAccount() {
	_, err := s.svc.CurrentBudgetAccount(s.ctx)
	s.requireCode(err, apperrors.CodeBudgetAccountNotSelected)

	_, err = s.svc.CreateCategory(s.ctx, "Bills", dec("10"), false)
	s.requireCode(err, apperrors.CodeBudgetAccountNotSelected)

	_, err = s.svc.NewTransactionToCategory(s.ctx, "Bills")
	s.requireCode(err, apperrors.CodeBudgetAccountNotSelected)

	_, err = s.svc.UncategorizedBalance(s.ctx)
	s.requireCode(err, apperrors.CodeBudgetAccountNotSelected)

	err = s.svc.TransferFund(s.ctx, "a", "b", dec("1"))
	s.requireCode(err, apperrors.CodeBudgetAccountNotSelected)
}

// --- Categories ---

func (s *BudgetingServiceTestSuite) TestCreateCategory_WithTransferFundsEnvelope() {
	s.newBudget("main", "10000")

	bills := s.createCategory("Bills", "2000", true)
	s.assertDecimal("2000", bills.Allocated)
	s.False(bills.IsDefault)

	summary, err := s.svc.CategorySummary(s.ctx, "Bills")
	s.Require().NoError(err)
	s.assertDecimal("2000", summary.Balance)
	s.assertDecimal("2000", summary.Available())
	s.assertDecimal("2000", summary.Allocated)
	s.assertDecimal("2000", summary.TransferIn)
	s.assertDecimal("0", summary.Income)
	s.assertDecimal("0", summary.Expense)

	s.assertDecimal("8000", s.uncategorized())
	s.assertDecimal("10000", s.actualTotal())
}

func (s *BudgetingServiceTestSuite) TestCreateCategory_WithoutTransferIsUnfunded() {
	s.newBudget("main", "10000")
	s.createCategory("Savings", "500", false)

	s.assertDecimal("0", s.balance("Savings"))
	s.assertDecimal("10000", s.uncategorized())

	allocated, err := s.svc.TotalAllocated(s.ctx)
	s.Require().NoError(err)
	s.assertDecimal("500", allocated)
}

func (s *BudgetingServiceTestSuite) TestCreateCategory_DuplicateNameFails() {
	s.newBudget("main", "100")
	s.createCategory("Bills", "10", false)

	_, err := s.svc.CreateCategory(s.ctx, "Bills", dec("20"), false)
	s.requireCode(err, apperrors.CodeCategoryAlreadyExists)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = s.svc.CreateCategory(s.ctx, domain.DefaultCategoryName, dec("0"), false)
	s.requireCode(err, apperrors.CodeCategoryAlreadyExists)
}

func (s *BudgetingServiceTestSuite) TestCreateCategory_FailedTransferRollsBackCategory() {
	s.newBudget("main", "1000")

	_, err := s.svc.CreateCategory(s.ctx, "Car", dec("5000"), true)
	s.requireCode(err, apperrors.CodeOverFunding)

	categories, err := s.svc.Categories(s.ctx)
	s.Require().NoError(err)
	s.Len(categories, 1, "the category must not survive a failed transfer")
	s.assertDecimal("1000", s.uncategorized())

	// the name is free again
	s.createCategory("Car", "500", true)
	s.assertDecimal("500", s.balance("Car"))
}

func (s *BudgetingServiceTestSuite) TestCreateCategory_NegativeAllocationFails() {
	s.newBudget("main", "100")
	_, err := s.svc.CreateCategory(s.ctx, "Bills", dec("-5"), false)
	s.requireCode(err, apperrors.CodeInvalidAmount)
}

func (s *BudgetingServiceTestSuite) TestCategoryBalance_UnknownCategory() {
	s.newBudget("main", "100")
	_, err := s.svc.CategoryBalance(s.ctx, "Nope")
	s.requireCode(err, apperrors.CodeCategoryNotFound)
}

func (s *BudgetingServiceTestSuite) TestUpdateCategory() {
	s.newBudget("main", "100")
	bills := s.createCategory("Bills", "10", false)

	updated, err := s.svc.UpdateCategory(s.ctx, bills.CategoryID, domain.CategoryUpdate{
		Name:      strPtr(" Utilities "),
		Allocated: func() *decimal.Decimal { v := dec("75.50"); return &v }(),
	})
	s.Require().NoError(err)
	s.Equal("Utilities", updated.Name)
	s.assertDecimal("75.50", updated.Allocated)

	s.createCategory("Food", "0", false)
	_, err = s.svc.UpdateCategory(s.ctx, bills.CategoryID, domain.CategoryUpdate{Name: strPtr("Food")})
	s.requireCode(err, apperrors.CodeCategoryAlreadyExists)

	_, err = s.svc.UpdateCategory(s.ctx, bills.CategoryID, domain.CategoryUpdate{Name: strPtr("")})
	s.requireCode(err, apperrors.CodeCategoryUpdateFailed)

	_, err = s.svc.UpdateCategory(s.ctx, 9999, domain.CategoryUpdate{Name: strPtr("x")})
	s.requireCode(err, apperrors.CodeCategoryNotFound)
}

func (s *BudgetingServiceTestSuite) TestDeleteCategory() {
	s.newBudget("main", "1000")
	empty := s.createCategory("Empty", "0", false)
	funded := s.createCategory("Funded", "100", true)

	s.Require().NoError(s.svc.DeleteCategory(s.ctx, empty.CategoryID))

	err := s.svc.DeleteCategory(s.ctx, funded.CategoryID)
	s.requireCode(err, apperrors.CodeCategoryDeleteFailed)

	categories, err := s.svc.Categories(s.ctx)
	s.Require().NoError(err)
	var defaultID int64
	for _, c := range categories {
		if c.IsDefault {
			defaultID = c.CategoryID
		}
	}
	s.Require().NotZero(defaultID)
	err = s.svc.DeleteCategory(s.ctx, defaultID)
	s.requireCode(err, apperrors.CodeCategoryDeleteFailed)

	err = s.svc.DeleteCategory(s.ctx, empty.CategoryID)
	s.requireCode(err, apperrors.CodeCategoryNotFound)
}

// --- Funding ---

func (s *BudgetingServiceTestSuite) TestTransferFund_MovesBalanceOnly() {
	s.newBudget("main", "10000")
	s.createCategory("Bills", "2000", true)
	s.createCategory("Travel", "0", false)

	s.Require().NoError(s.svc.TransferFund(s.ctx, "Bills", "Travel", dec("750")))

	s.assertDecimal("1250", s.balance("Bills"))
	s.assertDecimal("750", s.balance("Travel"))
	s.assertDecimal("10000", s.actualTotal())

	for _, name := range []string{"Bills", "Travel"} {
		income, err := s.svc.TotalIncome(s.ctx, strPtr(name))
		s.Require().NoError(err)
		s.assertDecimal("0", income, name)
		expense, err := s.svc.TotalExpense(s.ctx, strPtr(name))
		s.Require().NoError(err)
		s.assertDecimal("0", expense, name)
	}
}

func (s *BudgetingServiceTestSuite) TestTransferFund_WritesLinkedLegs() {
	s.newBudget("main", "1000")
	bills := s.createCategory("Bills", "0", false)
	s.Require().NoError(s.svc.TransferFund(s.ctx, domain.DefaultCategoryName, "Bills", dec("300")))

	txns, _, err := s.svc.Transactions(s.ctx, nil, 0, nil)
	s.Require().NoError(err)
	s.Require().Len(txns, 3)

	var out, in *domain.Transaction
	for i := range txns {
		switch txns[i].TransactionType {
		case domain.TransferOut:
			out = &txns[i]
		case domain.TransferIn:
			in = &txns[i]
		}
	}
	s.Require().NotNil(out)
	s.Require().NotNil(in)

	s.assertDecimal("-300", out.Amount)
	s.assertDecimal("300", in.Amount)
	s.Equal("Funded", out.Note)
	s.Equal("Bills", out.Payee)
	s.Equal("Received", in.Note)
	s.Equal(domain.DefaultCategoryName, in.Payee)

	s.Require().NotNil(out.TransferCategoryID)
	s.Equal(bills.CategoryID, *out.TransferCategoryID)
	s.Require().NotNil(in.TransferCategoryID)
	s.Equal(out.CategoryID, *in.TransferCategoryID)
	s.Require().NotNil(in.TransferTransactionID)
	s.Equal(out.TransactionID, *in.TransferTransactionID)
	s.Equal(bills.CategoryID, in.CategoryID)
}

func (s *BudgetingServiceTestSuite) TestTransferFund_Rules() {
	s.newBudget("main", "100")
	s.createCategory("Bills", "0", false)

	s.requireCode(s.svc.TransferFund(s.ctx, domain.DefaultCategoryName, "Bills", dec("0")), apperrors.CodeInvalidAmount)
	s.requireCode(s.svc.TransferFund(s.ctx, domain.DefaultCategoryName, "Bills", dec("-5")), apperrors.CodeInvalidAmount)
	s.requireCode(s.svc.TransferFund(s.ctx, "Bills", "Bills", dec("5")), apperrors.CodeFundTransferError)
	s.requireCode(s.svc.TransferFund(s.ctx, domain.DefaultCategoryName, "Bills", dec("100.01")), apperrors.CodeOverFunding)
	s.requireCode(s.svc.TransferFund(s.ctx, domain.DefaultCategoryName, "Nope", dec("5")), apperrors.CodeCategoryNotFound)

	s.assertDecimal("100", s.uncategorized())
	s.assertDecimal("0", s.balance("Bills"))
}

func (s *BudgetingServiceTestSuite) TestCalculateAmountToFund() {
	s.newBudget("main", "3000")
	s.createCategory("Vacation", "3100", false)

	_, err := s.svc.CalculateAmountToFund(s.ctx, domain.DefaultCategoryName, "Vacation", false)
	s.requireCode(err, apperrors.CodeOverFunding)

	amount, err := s.svc.CalculateAmountToFund(s.ctx, domain.DefaultCategoryName, "Vacation", true)
	s.Require().NoError(err)
	s.assertDecimal("3000", amount)

	// calculating never moves money
	s.assertDecimal("3000", s.uncategorized())
}

func (s *BudgetingServiceTestSuite) TestCalculateAmountToFund_OverdrawnAndFunded() {
	s.newBudget("main", "10000")
	s.createCategory("Bills", "2000", true)

	_, err := s.svc.CalculateAmountToFund(s.ctx, domain.DefaultCategoryName, "Bills", false)
	s.requireCode(err, apperrors.CodeAlreadyFunded)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	s.expense("Bills", "2500")
	s.assertDecimal("-500", s.balance("Bills"))

	amount, err := s.svc.CalculateAmountToFund(s.ctx, domain.DefaultCategoryName, "Bills", false)
	s.Require().NoError(err)
	s.assertDecimal("2500", amount)
}

func (s *BudgetingServiceTestSuite) TestFundAllFromUnallocated() {
	s.newBudget("main", "10000")
	s.createCategory("Bills", "2000", false)
	s.createCategory("Partial", "1000", false)
	s.Require().NoError(s.svc.TransferFund(s.ctx, domain.DefaultCategoryName, "Partial", dec("400")))

	moved, err := s.svc.FundAllFromUnallocated(s.ctx, "Bills", false)
	s.Require().NoError(err)
	s.assertDecimal("2000", moved)
	s.assertDecimal("2000", s.balance("Bills"))

	moved, err = s.svc.FundAllFromUnallocated(s.ctx, "Partial", false)
	s.Require().NoError(err)
	s.assertDecimal("600", moved)

	_, err = s.svc.FundAllFromUnallocated(s.ctx, "Bills", false)
	s.requireCode(err, apperrors.CodeAlreadyFunded)

	s.assertDecimal("7000", s.uncategorized())
	s.assertDecimal("10000", s.actualTotal())
}

func (s *BudgetingServiceTestSuite) TestFundAllFromUnallocated_AsMuchAsPossible() {
	s.newBudget("main", "300")
	s.createCategory("Rent", "1000", false)

	_, err := s.svc.FundAllFromUnallocated(s.ctx, "Rent", false)
	s.requireCode(err, apperrors.CodeOverFunding)

	moved, err := s.svc.FundAllFromUnallocated(s.ctx, "Rent", true)
	s.Require().NoError(err)
	s.assertDecimal("300", moved)
	s.assertDecimal("0", s.uncategorized())
	s.assertDecimal("300", s.balance("Rent"))
}

func (s *BudgetingServiceTestSuite) TestDefaultCategory_CannotBeRenamed() {
	s.newBudget("main", "100")
	fallback, err := s.svc.DefaultCategory(s.ctx)
	s.Require().NoError(err)
	s.True(fallback.IsDefault)
	s.Equal(domain.DefaultCategoryName, fallback.Name)

	_, err = s.svc.UpdateCategory(s.ctx, fallback.CategoryID, domain.CategoryUpdate{Name: strPtr("Pool")})
	s.requireCode(err, apperrors.CodeCategoryUpdateFailed)

	// same name and allocation edits are still accepted
	allocated := dec("40")
	updated, err := s.svc.UpdateCategory(s.ctx, fallback.CategoryID, domain.CategoryUpdate{
		Name:      strPtr(domain.DefaultCategoryName),
		Allocated: &allocated,
	})
	s.Require().NoError(err)
	s.assertDecimal("40", updated.Allocated)

	_, err = s.svc.CreateCategory(s.ctx, domain.DefaultCategoryName, dec("0"), false)
	s.requireCode(err, apperrors.CodeCategoryAlreadyExists)
}

func (s *BudgetingServiceTestSuite) TestFunding_ResolvesDefaultByFlagNotName() {
	s.newBudget("main", "100")
	fallback, err := s.svc.DefaultCategory(s.ctx)
	s.Require().NoError(err)

	// a store renamed outside the facade must not confuse the funding operations
	s.Require().NoError(s.repos.CategoryRepo.UpdateCategory(s.ctx, s.repos.Store.Conn(), fallback.CategoryID,
		domain.CategoryUpdate{Name: strPtr("Pool")}))
	s.createCategory(domain.DefaultCategoryName, "0", false)
	s.createCategory("Bills", "30", false)

	amount, err := s.svc.CalculateAmountToFund(s.ctx, "", "Bills", false)
	s.Require().NoError(err)
	s.assertDecimal("30", amount)

	moved, err := s.svc.FundAllFromUnallocated(s.ctx, "Bills", false)
	s.Require().NoError(err)
	s.assertDecimal("30", moved)

	s.assertDecimal("70", s.balance("Pool"))
	s.assertDecimal("0", s.balance(domain.DefaultCategoryName))
	s.assertDecimal("70", s.uncategorized())

	current, err := s.svc.DefaultCategory(s.ctx)
	s.Require().NoError(err)
	s.Equal("Pool", current.Name)
}

// --- Aggregates ---

func (s *BudgetingServiceTestSuite) TestMainBudgetScenario() {
	s.newBudget("main", "10000")
	s.createCategory("Bills", "2000", true)
	s.createCategory("Travel", "3000", true)

	s.assertDecimal("5000", s.uncategorized())
	s.assertDecimal("10000", s.actualTotal())

	allocated, err := s.svc.TotalAllocated(s.ctx)
	s.Require().NoError(err)
	s.assertDecimal("5000", allocated)

	s.expense("Travel", "1200.75")

	income, err := s.svc.TotalIncome(s.ctx, nil)
	s.Require().NoError(err)
	expense, err := s.svc.TotalExpense(s.ctx, nil)
	s.Require().NoError(err)
	s.assertDecimal("10000", income)
	s.assertDecimal("-1200.75", expense)
	s.assertDecimal(income.Add(expense).String(), s.actualTotal())

	summary, err := s.svc.Summary(s.ctx)
	s.Require().NoError(err)
	s.Equal("main", summary.BudgetAccount.FiledAs)
	s.assertDecimal("8799.25", summary.ActualTotal)
	s.assertDecimal("5000", summary.Uncategorized)
	s.assertDecimal("5000", summary.TotalAllocated)
}

func (s *BudgetingServiceTestSuite) TestBudgetAccountsAreIsolated() {
	s.newBudget("main", "10000")
	s.createCategory("Bills", "2000", true)

	s.newBudget("wallet", "500")
	s.createCategory("Bills", "100", true) // same name, other account
	s.expense("Bills", "40")

	s.assertDecimal("400", s.uncategorized())
	s.assertDecimal("460", s.actualTotal())
	s.assertDecimal("60", s.balance("Bills"))

	_, err := s.svc.SwitchBudgetAccount(s.ctx, "main")
	s.Require().NoError(err)
	s.assertDecimal("8000", s.uncategorized())
	s.assertDecimal("10000", s.actualTotal())
	s.assertDecimal("2000", s.balance("Bills"))

	txns, _, err := s.svc.Transactions(s.ctx, nil, 0, nil)
	s.Require().NoError(err)
	s.Len(txns, 3)
}

// --- Transactions ---

func (s *BudgetingServiceTestSuite) TestTransactionBuilder_RoundTrip() {
	s.newBudget("main", "1000")
	s.createCategory("Bills", "300", true)

	builder, err := s.svc.NewTransactionToCategory(s.ctx, "Bills")
	s.Require().NoError(err)
	txn, err := builder.Expense(dec("45.99")).Payee(" Power Co ").Note("June").Done(s.ctx)
	s.Require().NoError(err)
	s.NotZero(txn.TransactionID)

	stored, err := s.svc.Transaction(s.ctx, txn.TransactionID)
	s.Require().NoError(err)
	s.assertDecimal("-45.99", stored.Amount)
	s.Equal(txn.CategoryID, stored.CategoryID)
	s.Equal(domain.Expense, stored.TransactionType)
	s.Equal("Power Co", stored.Payee)
	s.Equal("June", stored.Note)
	s.True(txn.DateCreated.Equal(stored.DateCreated))

	income, err := s.svc.NewTransactionToCategory(s.ctx, domain.DefaultCategoryName)
	s.Require().NoError(err)
	salary, err := income.Income(dec("2500")).Payee("Employer").Done(s.ctx)
	s.Require().NoError(err)

	stored, err = s.svc.Transaction(s.ctx, salary.TransactionID)
	s.Require().NoError(err)
	s.assertDecimal("2500", stored.Amount)
	s.Equal(domain.Income, stored.TransactionType)

	s.assertDecimal("254.01", s.balance("Bills"))
	s.assertDecimal("3454.01", s.actualTotal())
}

func (s *BudgetingServiceTestSuite) TestTransactionBuilder_Validation() {
	s.newBudget("main", "1000")
	s.createCategory("Bills", "0", false)

	builder, err := s.svc.NewTransactionToCategory(s.ctx, "Bills")
	s.Require().NoError(err)

	_, err = builder.Payee("no amount").Done(s.ctx)
	s.requireCode(err, apperrors.CodeMissingTransactionFields)

	_, err = builder.Expense(dec("0")).Done(s.ctx)
	s.requireCode(err, apperrors.CodeInvalidAmount)

	_, err = builder.Income(dec("10")).Done(s.ctx)
	s.requireCode(err, apperrors.CodeOnlyDefaultCategoryCanHaveIncome)

	_, err = s.svc.NewTransactionToCategory(s.ctx, "Nope")
	s.requireCode(err, apperrors.CodeCategoryNotFound)
}

func (s *BudgetingServiceTestSuite) TestTransactionBuilder_IsImmutable() {
	s.newBudget("main", "1000")
	s.createCategory("Food", "500", true)

	base, err := s.svc.NewTransactionToCategory(s.ctx, "Food")
	s.Require().NoError(err)
	shared := base.Payee("Market")

	small, err := shared.Expense(dec("10")).Done(s.ctx)
	s.Require().NoError(err)
	large, err := shared.Expense(dec("90")).Note("weekly").Done(s.ctx)
	s.Require().NoError(err)

	s.assertDecimal("-10", small.Amount)
	s.Equal("", small.Note)
	s.assertDecimal("-90", large.Amount)
	s.Equal("Market", large.Payee)

	_, err = base.Done(s.ctx)
	s.requireCode(err, apperrors.CodeMissingTransactionFields)
}

func (s *BudgetingServiceTestSuite) TestTransactionBuilder_Dates() {
	s.newBudget("main", "1000")
	s.createCategory("Food", "500", true)
	builder, err := s.svc.NewTransactionToCategory(s.ctx, "Food")
	s.Require().NoError(err)

	dated, err := builder.Expense(dec("1")).OnDate("2024-03-05 18:30:00").Done(s.ctx)
	s.Require().NoError(err)
	s.True(time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC).Equal(dated.DateCreated))

	bad, err := builder.Expense(dec("1")).OnDate("yesterday-ish").Done(s.ctx)
	s.Require().NoError(err)
	s.True(domain.EpochFallback.Equal(bad.DateCreated))

	stored, err := s.svc.Transaction(s.ctx, bad.TransactionID)
	s.Require().NoError(err)
	s.True(domain.EpochFallback.Equal(stored.DateCreated))
}

func (s *BudgetingServiceTestSuite) TestTransaction_OtherAccountIsHidden() {
	s.newBudget("main", "1000")
	s.createCategory("Food", "500", true)
	txn := s.expense("Food", "5")

	s.newBudget("wallet", "10")
	_, err := s.svc.Transaction(s.ctx, txn.TransactionID)
	s.requireCode(err, apperrors.CodeTransactionNotFound)

	_, err = s.svc.Transaction(s.ctx, 424242)
	s.requireCode(err, apperrors.CodeTransactionNotFound)
}

func (s *BudgetingServiceTestSuite) TestUpdateTransaction() {
	s.newBudget("main", "1000")
	food := s.createCategory("Food", "500", true)
	fun := s.createCategory("Fun", "100", true)
	txn := s.expense("Food", "20")

	amount := dec("35")
	updated, err := s.svc.UpdateTransaction(s.ctx, txn.TransactionID, domain.TransactionUpdate{
		Payee:      strPtr("Cinema"),
		Amount:     &amount,
		CategoryID: &fun.CategoryID,
	})
	s.Require().NoError(err)
	s.assertDecimal("-35", updated.Amount)
	s.Equal(fun.CategoryID, updated.CategoryID)
	s.Equal("Cinema", updated.Payee)

	s.assertDecimal("500", s.balance("Food"))
	s.assertDecimal("65", s.balance("Fun"))

	zero := dec("0")
	_, err = s.svc.UpdateTransaction(s.ctx, txn.TransactionID, domain.TransactionUpdate{Amount: &zero})
	s.requireCode(err, apperrors.CodeInvalidAmount)

	_, err = s.svc.UpdateTransaction(s.ctx, 9999, domain.TransactionUpdate{Payee: strPtr("x")})
	s.requireCode(err, apperrors.CodeTransactionNotFound)

	txns, _, err := s.svc.Transactions(s.ctx, &food.CategoryID, 0, nil)
	s.Require().NoError(err)
	s.Require().Len(txns, 1)
	transferIn := txns[0]
	s.Equal(domain.TransferIn, transferIn.TransactionType)

	_, err = s.svc.UpdateTransaction(s.ctx, transferIn.TransactionID, domain.TransactionUpdate{Amount: &amount})
	s.requireCode(err, apperrors.CodeTransactionUpdateFailed)
	_, err = s.svc.UpdateTransaction(s.ctx, transferIn.TransactionID, domain.TransactionUpdate{CategoryID: &fun.CategoryID})
	s.requireCode(err, apperrors.CodeTransactionUpdateFailed)

	relabelled, err := s.svc.UpdateTransaction(s.ctx, transferIn.TransactionID, domain.TransactionUpdate{Note: strPtr("Monthly top-up")})
	s.Require().NoError(err)
	s.Equal("Monthly top-up", relabelled.Note)
	s.assertDecimal("500", relabelled.Amount)
}

func (s *BudgetingServiceTestSuite) TestUpdateTransaction_IncomeStaysInDefaultCategory() {
	s.newBudget("main", "1000")
	fun := s.createCategory("Fun", "0", false)

	txns, _, err := s.svc.Transactions(s.ctx, nil, 0, nil)
	s.Require().NoError(err)
	s.Require().Len(txns, 1)

	_, err = s.svc.UpdateTransaction(s.ctx, txns[0].TransactionID, domain.TransactionUpdate{CategoryID: &fun.CategoryID})
	s.requireCode(err, apperrors.CodeOnlyDefaultCategoryCanHaveIncome)

	amount := dec("1200")
	updated, err := s.svc.UpdateTransaction(s.ctx, txns[0].TransactionID, domain.TransactionUpdate{Amount: &amount})
	s.Require().NoError(err)
	s.assertDecimal("1200", updated.Amount)
	s.assertDecimal("1200", s.actualTotal())
}

func (s *BudgetingServiceTestSuite) TestTransactions_Pagination() {
	s.newBudget("main", "1000")
	food := s.createCategory("Food", "500", true)
	for i := 1; i <= 5; i++ {
		s.expense("Food", "1")
	}

	seen := map[int64]bool{}
	var token *string
	var previous *domain.Transaction
	pages := 0
	for {
		page, next, err := s.svc.Transactions(s.ctx, &food.CategoryID, 2, token)
		s.Require().NoError(err)
		pages++
		for i := range page {
			s.False(seen[page[i].TransactionID], "transaction returned twice")
			seen[page[i].TransactionID] = true
			if previous != nil {
				s.False(page[i].DateCreated.After(previous.DateCreated), "results must be newest first")
			}
			previous = &page[i]
		}
		if next == nil {
			break
		}
		token = next
	}
	s.Len(seen, 6) // transfer-in plus five expenses
	s.Equal(3, pages)
}

// --- Atomicity ---

// failingTransferIn rejects the second leg of every transfer.
type failingTransferIn struct {
	portsrepo.TransactionRepositoryFacade
}

func (f failingTransferIn) SaveTransaction(ctx context.Context, q portsrepo.Querier, txn domain.Transaction) (*domain.Transaction, error) {
	if txn.TransactionType == domain.TransferIn {
		return nil, apperrors.New(apperrors.CodeFailedToCreateTransaction, "transfer in leg", nil)
	}
	return f.TransactionRepositoryFacade.SaveTransaction(ctx, q, txn)
}

func TestTransferFund_FailedSecondLegLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	repos := openTestRepos(t)
	healthy := services.NewBudgetingService(repos)
	_, err := healthy.NewBudget(ctx, "main", dec("1000"))
	require.NoError(t, err)
	_, err = healthy.CreateCategory(ctx, "Bills", dec("0"), false)
	require.NoError(t, err)

	broken := repos
	broken.TransactionRepo = failingTransferIn{repos.TransactionRepo}
	svc := services.NewBudgetingService(broken)
	_, err = svc.SwitchBudgetAccount(ctx, "main")
	require.NoError(t, err)

	err = svc.TransferFund(ctx, domain.DefaultCategoryName, "Bills", dec("250"))
	require.Error(t, err)
	require.Equal(t, apperrors.CodeFailedToCreateTransaction, apperrors.CodeOf(err))

	_, err = svc.CreateCategory(ctx, "Travel", dec("100"), true)
	require.Error(t, err)

	txns, _, err := healthy.Transactions(ctx, nil, 0, nil)
	require.NoError(t, err)
	require.Len(t, txns, 1, "only the seed income may remain")
	require.Equal(t, domain.Income, txns[0].TransactionType)

	uncategorized, err := healthy.UncategorizedBalance(ctx)
	require.NoError(t, err)
	require.True(t, dec("1000").Equal(uncategorized))

	_, err = healthy.CategoryBalance(ctx, "Travel")
	require.Equal(t, apperrors.CodeCategoryNotFound, apperrors.CodeOf(err))
}
