package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/envelope_budget/internal/apperrors"
	"github.com/SscSPs/envelope_budget/internal/core/domain"
	portsrepo "github.com/SscSPs/envelope_budget/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/envelope_budget/internal/core/ports/services"
	"github.com/SscSPs/envelope_budget/internal/metrics"
	"github.com/shopspring/decimal"
)

const (
	seedTransactionNote     = "Initial balance"
	transferOutNote         = "Funded"
	transferInNote          = "Received"
	defaultTransactionLimit = 0 // unlimited
)

// BudgetingService is the ledger facade. It owns the current budget account and
// runs one operation at a time against the store.
type BudgetingService struct {
	BaseService

	store        portsrepo.TransactionManager
	accounts     portsrepo.BudgetAccountRepositoryFacade
	categories   portsrepo.CategoryRepositoryFacade
	transactions portsrepo.TransactionRepositoryFacade

	metrics *metrics.Recorder
	now     func() time.Time

	mu      sync.Mutex
	current *domain.BudgetAccount
}

// Ensure BudgetingService implements portssvc.BudgetingSvcFacade
var _ portssvc.BudgetingSvcFacade = (*BudgetingService)(nil)

// BudgetingOption configures optional collaborators of the service.
type BudgetingOption func(*BudgetingService)

// WithMetrics records every operation on r.
func WithMetrics(r *metrics.Recorder) BudgetingOption {
	return func(s *BudgetingService) {
		s.metrics = r
	}
}

// WithClock replaces time.Now as the source of transaction dates.
func WithClock(now func() time.Time) BudgetingOption {
	return func(s *BudgetingService) {
		s.now = now
	}
}

// NewBudgetingService creates the facade over the given repositories.
func NewBudgetingService(repos portsrepo.RepositoryProvider, opts ...BudgetingOption) *BudgetingService {
	s := &BudgetingService{
		store:        repos.Store,
		accounts:     repos.BudgetAccountRepo,
		categories:   repos.CategoryRepo,
		transactions: repos.TransactionRepo,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BudgetingService) timestamp() time.Time {
	return storageTime(s.now())
}

// currentAccount returns the selected account. Callers hold s.mu.
func (s *BudgetingService) currentAccount() (domain.BudgetAccount, error) {
	if s.current == nil {
		return domain.BudgetAccount{}, apperrors.Newf(apperrors.CodeBudgetAccountNotSelected, "no budget account selected")
	}
	return *s.current, nil
}

// --- Budget accounts ---

// NewBudget creates a budget account seeded with its initial balance and selects it.
// Implements portssvc.BudgetAccountSvc
func (s *BudgetingService) NewBudget(ctx context.Context, name string, initialAmount decimal.Decimal) (_ *domain.BudgetAccount, err error) {
	defer func() { s.metrics.Observe("new_budget", err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Newf(apperrors.CodeFailedToCreateBudget, "budget name is required")
	}
	if initialAmount.IsNegative() {
		return nil, apperrors.Newf(apperrors.CodeInvalidAmount, "initial amount must not be negative, got %s", initialAmount)
	}

	now := s.timestamp()
	var account *domain.BudgetAccount
	err = s.store.WithinTx(ctx, func(q portsrepo.Querier) error {
		saved, err := s.accounts.SaveBudgetAccount(ctx, q, domain.BudgetAccount{FiledAs: name, DateCreated: now})
		if err != nil {
			return err
		}

		defaultCategory, err := s.categories.SaveCategory(ctx, q, domain.Category{
			BudgetAccountID: saved.BudgetAccountID,
			Name:            domain.DefaultCategoryName,
			Allocated:       decimal.Zero,
			IsDefault:       true,
		})
		if err != nil {
			return err
		}

		_, err = s.transactions.SaveTransaction(ctx, q, domain.Transaction{
			Note:            seedTransactionNote,
			Payee:           name,
			DateCreated:     now,
			Amount:          domain.Income.Signed(initialAmount),
			CategoryID:      defaultCategory.CategoryID,
			TransactionType: domain.Income,
			BudgetAccountID: saved.BudgetAccountID,
		})
		if err != nil {
			return err
		}

		account = saved
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create budget account", slog.String("budget", name))
		return nil, err
	}

	s.current = account
	s.LogInfo(ctx, "Budget account created", slog.String("budget", name), slog.Int64("budget_account_id", account.BudgetAccountID))
	result := *account
	return &result, nil
}

// Implements portssvc.BudgetAccountSvc
func (s *BudgetingService) SwitchBudgetAccount(ctx context.Context, name string) (_ *domain.BudgetAccount, err error) {
	defer func() { s.metrics.Observe("switch_budget_account", err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.accounts.FindBudgetAccountByName(ctx, s.store.Conn(), strings.TrimSpace(name))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load budget account", slog.String("budget", name))
		}
		return nil, err
	}

	s.current = account
	s.LogInfo(ctx, "Switched budget account", slog.String("budget", account.FiledAs))
	result := *account
	return &result, nil
}

// Implements portssvc.BudgetAccountSvc
func (s *BudgetingService) CurrentBudgetAccount(ctx context.Context) (*domain.BudgetAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Implements portssvc.BudgetAccountSvc
func (s *BudgetingService) ListBudgetAccounts(ctx context.Context) ([]domain.BudgetAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.accounts.ListBudgetAccounts(ctx, s.store.Conn())
	if err != nil {
		s.LogError(ctx, err, "Failed to list budget accounts")
		return nil, err
	}
	return accounts, nil
}

// --- Categories ---

// CreateCategory inserts the category and, with transfer, funds it in the same unit of work.
// Implements portssvc.CategorySvc
func (s *BudgetingService) CreateCategory(ctx context.Context, name string, allocate decimal.Decimal, transfer bool) (_ *domain.Category, err error) {
	defer func() { s.metrics.Observe("create_category", err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Newf(apperrors.CodeFailedToCreateCategory, "category name is required")
	}
	if allocate.IsNegative() {
		return nil, apperrors.Newf(apperrors.CodeInvalidAmount, "allocation must not be negative, got %s", allocate)
	}

	moved := transfer && allocate.IsPositive()
	var category *domain.Category
	err = s.store.WithinTx(ctx, func(q portsrepo.Querier) error {
		saved, err := s.categories.SaveCategory(ctx, q, domain.Category{
			BudgetAccountID: account.BudgetAccountID,
			Name:            name,
			Allocated:       allocate,
		})
		if err != nil {
			return err
		}

		if moved {
			defaultCategory, err := s.categories.FindDefaultCategory(ctx, q, account.BudgetAccountID)
			if err != nil {
				return err
			}
			if err := s.transferFund(ctx, q, account, *defaultCategory, *saved, allocate); err != nil {
				return err
			}
		}

		category = saved
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to create category", slog.String("category", name))
		}
		return nil, err
	}

	if moved {
		s.metrics.Transferred(allocate)
	}
	s.LogInfo(ctx, "Category created",
		slog.String("category", name),
		slog.String("allocated", allocate.String()),
		slog.Bool("funded", moved))
	return category, nil
}

// findCategory resolves a category of the account by name.
func (s *BudgetingService) findCategory(ctx context.Context, q portsrepo.Querier, account domain.BudgetAccount, name string) (*domain.Category, error) {
	return s.categories.FindCategoryByName(ctx, q, account.BudgetAccountID, strings.TrimSpace(name))
}

// findOwnCategory loads a category by id and hides categories of other accounts.
func (s *BudgetingService) findOwnCategory(ctx context.Context, q portsrepo.Querier, account domain.BudgetAccount, categoryID int64) (*domain.Category, error) {
	category, err := s.categories.FindCategoryByID(ctx, q, categoryID)
	if err != nil {
		return nil, err
	}
	if category.BudgetAccountID != account.BudgetAccountID {
		return nil, apperrors.Newf(apperrors.CodeCategoryNotFound, "category id %d", categoryID)
	}
	return category, nil
}

func (s *BudgetingService) categoryBalance(ctx context.Context, q portsrepo.Querier, categoryID int64) (decimal.Decimal, error) {
	totals, err := s.transactions.CategoryTotals(ctx, q, categoryID)
	if err != nil {
		return decimal.Zero, err
	}
	return totals.Balance(), nil
}

// Implements portssvc.CategorySvc
func (s *BudgetingService) Categories(ctx context.Context) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.ListCategories(ctx, s.store.Conn(), account.BudgetAccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, err
	}
	return categories, nil
}

// DefaultCategory returns the flagged default category of the current account.
// Implements portssvc.CategorySvc
func (s *BudgetingService) DefaultCategory(ctx context.Context) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return nil, err
	}
	return s.categories.FindDefaultCategory(ctx, s.store.Conn(), account.BudgetAccountID)
}

// Implements portssvc.CategorySvc
func (s *BudgetingService) CategoryBalance(ctx context.Context, name string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return decimal.Zero, err
	}
	q := s.store.Conn()
	category, err := s.findCategory(ctx, q, account, name)
	if err != nil {
		return decimal.Zero, err
	}
	return s.categoryBalance(ctx, q, category.CategoryID)
}

// Implements portssvc.CategorySvc
func (s *BudgetingService) CategorySummary(ctx context.Context, name string) (*domain.CategorySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return nil, err
	}
	q := s.store.Conn()
	category, err := s.findCategory(ctx, q, account, name)
	if err != nil {
		return nil, err
	}
	totals, err := s.transactions.CategoryTotals(ctx, q, category.CategoryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to total category", slog.String("category", name))
		return nil, err
	}
	return &domain.CategorySummary{
		Category:       *category,
		CategoryTotals: totals,
		Balance:        totals.Balance(),
	}, nil
}

// UpdateCategory applies a partial edit. The default category keeps its name.
// Implements portssvc.CategorySvc
func (s *BudgetingService) UpdateCategory(ctx context.Context, categoryID int64, update domain.CategoryUpdate) (_ *domain.Category, err error) {
	defer func() { s.metrics.Observe("update_category", err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if trimmed == "" {
			return nil, apperrors.Newf(apperrors.CodeCategoryUpdateFailed, "category name must not be empty")
		}
		update.Name = &trimmed
	}
	if update.Allocated != nil && update.Allocated.IsNegative() {
		return nil, apperrors.Newf(apperrors.CodeInvalidAmount, "allocation must not be negative, got %s", *update.Allocated)
	}

	var updated *domain.Category
	err = s.store.WithinTx(ctx, func(q portsrepo.Querier) error {
		category, err := s.findOwnCategory(ctx, q, account, categoryID)
		if err != nil {
			return err
		}
		if category.IsDefault && update.Name != nil && *update.Name != category.Name {
			return apperrors.Newf(apperrors.CodeCategoryUpdateFailed, "the default category %s cannot be renamed", category.Name)
		}
		if err := s.categories.UpdateCategory(ctx, q, categoryID, update); err != nil {
			return err
		}
		found, err := s.categories.FindCategoryByID(ctx, q, categoryID)
		if err != nil {
			return err
		}
		updated = found
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.Int64("category_id", categoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category updated", slog.Int64("category_id", categoryID))
	return updated, nil
}

// Implements portssvc.CategorySvc
func (s *BudgetingService) DeleteCategory(ctx context.Context, categoryID int64) (err error) {
	defer func() { s.metrics.Observe("delete_category", err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return err
	}

	err = s.store.WithinTx(ctx, func(q portsrepo.Querier) error {
		category, err := s.findOwnCategory(ctx, q, account, categoryID)
		if err != nil {
			return err
		}
		if category.IsDefault {
			return apperrors.Newf(apperrors.CodeCategoryDeleteFailed, "the default category %s cannot be deleted", category.Name)
		}
		return s.categories.DeleteCategory(ctx, q, categoryID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.Int64("category_id", categoryID))
		return err
	}

	s.LogInfo(ctx, "Category deleted", slog.Int64("category_id", categoryID))
	return nil
}

// --- Funding ---

// transferFund writes the TransferOut/TransferIn pair on q. Callers own the unit of work.
func (s *BudgetingService) transferFund(ctx context.Context, q portsrepo.Querier, account domain.BudgetAccount, src, dest domain.Category, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.Newf(apperrors.CodeInvalidAmount, "transfer amount must be greater than zero, got %s", amount)
	}
	if src.CategoryID == dest.CategoryID {
		return apperrors.Newf(apperrors.CodeFundTransferError, "cannot transfer from %s to itself", src.Name)
	}

	srcBalance, err := s.categoryBalance(ctx, q, src.CategoryID)
	if err != nil {
		return err
	}
	if srcBalance.LessThan(amount) {
		return apperrors.Newf(apperrors.CodeOverFunding, "%s holds %s, cannot move %s to %s", src.Name, srcBalance, amount, dest.Name)
	}

	now := s.timestamp()
	destID, srcID := dest.CategoryID, src.CategoryID

	out, err := s.transactions.SaveTransaction(ctx, q, domain.Transaction{
		Note:               transferOutNote,
		Payee:              dest.Name,
		DateCreated:        now,
		Amount:             domain.TransferOut.Signed(amount),
		CategoryID:         src.CategoryID,
		TransactionType:    domain.TransferOut,
		TransferCategoryID: &destID,
		BudgetAccountID:    account.BudgetAccountID,
	})
	if err != nil {
		return err
	}

	outID := out.TransactionID
	_, err = s.transactions.SaveTransaction(ctx, q, domain.Transaction{
		Note:                  transferInNote,
		Payee:                 src.Name,
		DateCreated:           now,
		Amount:                domain.TransferIn.Signed(amount),
		CategoryID:            dest.CategoryID,
		TransactionType:       domain.TransferIn,
		TransferCategoryID:    &srcID,
		TransferTransactionID: &outID,
		BudgetAccountID:       account.BudgetAccountID,
	})
	return err
}

// TransferFund moves amount between two categories of the current account.
// Implements portssvc.FundingSvc
func (s *BudgetingService) TransferFund(ctx context.Context, src, dest string, amount decimal.Decimal) (err error) {
	defer func() { s.metrics.Observe("transfer_fund", err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return err
	}

	err = s.store.WithinTx(ctx, func(q portsrepo.Querier) error {
		srcCategory, err := s.findCategory(ctx, q, account, src)
		if err != nil {
			return err
		}
		destCategory, err := s.findCategory(ctx, q, account, dest)
		if err != nil {
			return err
		}
		return s.transferFund(ctx, q, account, *srcCategory, *destCategory, amount)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Fund transfer failed", slog.String("src", src), slog.String("dest", dest))
		}
		return err
	}

	s.metrics.Transferred(amount)
	s.LogInfo(ctx, "Funds transferred", slog.String("src", src), slog.String("dest", dest), slog.String("amount", amount.String()))
	return nil
}

// amountToFund evaluates the funding calculation for two resolved categories.
func (s *BudgetingService) amountToFund(ctx context.Context, q portsrepo.Querier, src, dest domain.Category, asMuchPossible bool) (decimal.Decimal, error) {
	srcBalance, err := s.categoryBalance(ctx, q, src.CategoryID)
	if err != nil {
		return decimal.Zero, err
	}
	destBalance, err := s.categoryBalance(ctx, q, dest.CategoryID)
	if err != nil {
		return decimal.Zero, err
	}
	return calculateAmountToFund(
		fundingSide{Name: src.Name, Balance: srcBalance, Allocated: src.Allocated},
		fundingSide{Name: dest.Name, Balance: destBalance, Allocated: dest.Allocated},
		asMuchPossible,
	)
}

// CalculateAmountToFund reports how much src can move into dest. An empty src is the default category.
// Implements portssvc.FundingSvc
func (s *BudgetingService) CalculateAmountToFund(ctx context.Context, src, dest string, asMuchPossible bool) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return decimal.Zero, err
	}
	q := s.store.Conn()
	var srcCategory *domain.Category
	if strings.TrimSpace(src) == "" {
		srcCategory, err = s.categories.FindDefaultCategory(ctx, q, account.BudgetAccountID)
	} else {
		srcCategory, err = s.findCategory(ctx, q, account, src)
	}
	if err != nil {
		return decimal.Zero, err
	}
	destCategory, err := s.findCategory(ctx, q, account, dest)
	if err != nil {
		return decimal.Zero, err
	}
	return s.amountToFund(ctx, q, *srcCategory, *destCategory, asMuchPossible)
}

// Implements portssvc.FundingSvc
func (s *BudgetingService) FundAllFromUnallocated(ctx context.Context, category string, asMuchPossible bool) (_ decimal.Decimal, err error) {
	defer func() { s.metrics.Observe("fund_all_from_unallocated", err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return decimal.Zero, err
	}

	var amount decimal.Decimal
	err = s.store.WithinTx(ctx, func(q portsrepo.Querier) error {
		defaultCategory, err := s.categories.FindDefaultCategory(ctx, q, account.BudgetAccountID)
		if err != nil {
			return err
		}
		destCategory, err := s.findCategory(ctx, q, account, category)
		if err != nil {
			return err
		}
		amount, err = s.amountToFund(ctx, q, *defaultCategory, *destCategory, asMuchPossible)
		if err != nil {
			return err
		}
		return s.transferFund(ctx, q, account, *defaultCategory, *destCategory, amount)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to fund category", slog.String("category", category))
		}
		return decimal.Zero, err
	}

	s.metrics.Transferred(amount)
	s.LogInfo(ctx, "Category funded from unallocated", slog.String("category", category), slog.String("amount", amount.String()))
	return amount, nil
}

// --- Transactions ---

// Implements portssvc.TransactionSvc
func (s *BudgetingService) NewTransactionToCategory(ctx context.Context, categoryName string) (portssvc.TransactionBuilder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return nil, err
	}
	category, err := s.findCategory(ctx, s.store.Conn(), account, categoryName)
	if err != nil {
		return nil, err
	}
	return transactionBuilder{svc: s, accountID: account.BudgetAccountID, category: *category}, nil
}

// recordTransaction persists a builder's transaction.
func (s *BudgetingService) recordTransaction(ctx context.Context, b transactionBuilder) (_ *domain.Transaction, err error) {
	defer func() { s.metrics.Observe("record_transaction", err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, err := b.build(s.timestamp())
	if err != nil {
		return nil, err
	}

	saved, err := s.transactions.SaveTransaction(ctx, s.store.Conn(), txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to record transaction", slog.String("category", b.category.Name))
		return nil, err
	}

	s.LogDebug(ctx, "Transaction recorded",
		slog.Int64("transaction_id", saved.TransactionID),
		slog.String("type", saved.TransactionType.String()),
		slog.String("amount", saved.Amount.String()))
	return saved, nil
}

// Implements portssvc.TransactionSvc
func (s *BudgetingService) Transactions(ctx context.Context, categoryID *int64, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return nil, nil, err
	}
	if limit < 0 {
		limit = defaultTransactionLimit
	}

	accountID := account.BudgetAccountID
	filter := domain.TransactionFilter{BudgetAccountID: &accountID, CategoryID: categoryID}
	transactions, token, err := s.transactions.ListTransactions(ctx, s.store.Conn(), filter, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, nil, err
	}
	return transactions, token, nil
}

// findOwnTransaction loads a transaction by id and hides transactions of other accounts.
func (s *BudgetingService) findOwnTransaction(ctx context.Context, q portsrepo.Querier, account domain.BudgetAccount, transactionID int64) (*domain.Transaction, error) {
	txn, err := s.transactions.FindTransactionByID(ctx, q, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.BudgetAccountID != account.BudgetAccountID {
		return nil, apperrors.Newf(apperrors.CodeTransactionNotFound, "transaction id %d", transactionID)
	}
	return txn, nil
}

// Implements portssvc.TransactionSvc
func (s *BudgetingService) Transaction(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return nil, err
	}
	return s.findOwnTransaction(ctx, s.store.Conn(), account, transactionID)
}

// UpdateTransaction edits payee, note, amount or category. Amount is a magnitude; the
// stored sign follows the transaction type. Transfer legs only accept payee and note.
// Implements portssvc.TransactionSvc
func (s *BudgetingService) UpdateTransaction(ctx context.Context, transactionID int64, update domain.TransactionUpdate) (_ *domain.Transaction, err error) {
	defer func() { s.metrics.Observe("update_transaction", err) }()
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return nil, err
	}

	var updated *domain.Transaction
	err = s.store.WithinTx(ctx, func(q portsrepo.Querier) error {
		txn, err := s.findOwnTransaction(ctx, q, account, transactionID)
		if err != nil {
			return err
		}

		if txn.TransactionType.IsTransfer() && (update.Amount != nil || update.CategoryID != nil) {
			return apperrors.Newf(apperrors.CodeTransactionUpdateFailed,
				"amount and category of transfer transaction %d cannot be edited", transactionID)
		}

		if update.Payee != nil {
			txn.Payee = strings.TrimSpace(*update.Payee)
		}
		if update.Note != nil {
			txn.Note = strings.TrimSpace(*update.Note)
		}
		if update.Amount != nil {
			if !update.Amount.IsPositive() {
				return apperrors.Newf(apperrors.CodeInvalidAmount, "amount must be greater than zero, got %s", *update.Amount)
			}
			txn.Amount = txn.TransactionType.Signed(*update.Amount)
		}
		if update.CategoryID != nil && *update.CategoryID != txn.CategoryID {
			category, err := s.findOwnCategory(ctx, q, account, *update.CategoryID)
			if err != nil {
				return err
			}
			if txn.TransactionType.IsIncome() && !category.IsDefault {
				return apperrors.Newf(apperrors.CodeOnlyDefaultCategoryCanHaveIncome, "cannot move income to %s", category.Name)
			}
			txn.CategoryID = category.CategoryID
		}

		if err := s.transactions.UpdateTransaction(ctx, q, *txn); err != nil {
			return err
		}
		updated = txn
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.Int64("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.Int64("transaction_id", transactionID))
	return updated, nil
}

// --- Aggregates ---

// sum adds up the account's transactions of the given types, optionally for one category.
func (s *BudgetingService) sum(ctx context.Context, q portsrepo.Querier, account domain.BudgetAccount, categoryID *int64, types ...domain.TransactionType) (decimal.Decimal, error) {
	accountID := account.BudgetAccountID
	return s.transactions.SumAmounts(ctx, q, domain.TransactionFilter{
		BudgetAccountID: &accountID,
		CategoryID:      categoryID,
		Types:           types,
	})
}

// optionalCategoryID resolves an optional category name to its id.
func (s *BudgetingService) optionalCategoryID(ctx context.Context, q portsrepo.Querier, account domain.BudgetAccount, name *string) (*int64, error) {
	if name == nil {
		return nil, nil
	}
	category, err := s.findCategory(ctx, q, account, *name)
	if err != nil {
		return nil, err
	}
	return &category.CategoryID, nil
}

func (s *BudgetingService) actualTotalBalance(ctx context.Context, q portsrepo.Querier, account domain.BudgetAccount) (decimal.Decimal, error) {
	return s.sum(ctx, q, account, nil, domain.Income, domain.Expense)
}

func (s *BudgetingService) uncategorizedBalance(ctx context.Context, q portsrepo.Querier, account domain.BudgetAccount) (decimal.Decimal, error) {
	defaultCategory, err := s.categories.FindDefaultCategory(ctx, q, account.BudgetAccountID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.sum(ctx, q, account, &defaultCategory.CategoryID)
}

func (s *BudgetingService) totalAllocated(ctx context.Context, q portsrepo.Querier, account domain.BudgetAccount) (decimal.Decimal, error) {
	categories, err := s.categories.ListCategories(ctx, q, account.BudgetAccountID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(c.Allocated)
	}
	return total, nil
}

// Implements portssvc.ReportingSvc
func (s *BudgetingService) ActualTotalBalance(ctx context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return decimal.Zero, err
	}
	return s.actualTotalBalance(ctx, s.store.Conn(), account)
}

// Implements portssvc.ReportingSvc
func (s *BudgetingService) UncategorizedBalance(ctx context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return decimal.Zero, err
	}
	return s.uncategorizedBalance(ctx, s.store.Conn(), account)
}

// Implements portssvc.ReportingSvc
func (s *BudgetingService) TotalIncome(ctx context.Context, categoryName *string) (decimal.Decimal, error) {
	return s.totalOfType(ctx, categoryName, domain.Income)
}

// Implements portssvc.ReportingSvc
func (s *BudgetingService) TotalExpense(ctx context.Context, categoryName *string) (decimal.Decimal, error) {
	return s.totalOfType(ctx, categoryName, domain.Expense)
}

func (s *BudgetingService) totalOfType(ctx context.Context, categoryName *string, txType domain.TransactionType) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return decimal.Zero, err
	}
	q := s.store.Conn()
	categoryID, err := s.optionalCategoryID(ctx, q, account, categoryName)
	if err != nil {
		return decimal.Zero, err
	}
	return s.sum(ctx, q, account, categoryID, txType)
}

// Implements portssvc.ReportingSvc
func (s *BudgetingService) TotalAllocated(ctx context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return decimal.Zero, err
	}
	return s.totalAllocated(ctx, s.store.Conn(), account)
}

// Summary computes every aggregate of the current account in one call.
// Implements portssvc.ReportingSvc
func (s *BudgetingService) Summary(ctx context.Context) (*domain.BudgetSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.currentAccount()
	if err != nil {
		return nil, err
	}
	q := s.store.Conn()

	summary := &domain.BudgetSummary{BudgetAccount: account}
	if summary.TotalIncome, err = s.sum(ctx, q, account, nil, domain.Income); err != nil {
		return nil, err
	}
	if summary.TotalExpense, err = s.sum(ctx, q, account, nil, domain.Expense); err != nil {
		return nil, err
	}
	summary.ActualTotal = summary.TotalIncome.Add(summary.TotalExpense)
	if summary.Uncategorized, err = s.uncategorizedBalance(ctx, q, account); err != nil {
		return nil, err
	}
	if summary.TotalAllocated, err = s.totalAllocated(ctx, q, account); err != nil {
		return nil, err
	}
	return summary, nil
}
