package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that a business rule or input check rejected the request.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrOperationFailed indicates that the store rejected a write or could not be read.
var ErrOperationFailed = errors.New("operation failed")

// Code is the stable identifier of a ledger error, safe to hand to UI/CLI callers.
type Code string

const (
	CodeBudgetAccountNotFound            Code = "BUDGET_ACCOUNT_NOT_FOUND"
	CodeCategoryNotFound                 Code = "CATEGORY_NOT_FOUND"
	CodeTransactionNotFound              Code = "TRANSACTION_NOT_FOUND"
	CodeCategoryAlreadyExists            Code = "CATEGORY_ALREADY_EXISTS"
	CodeAlreadyFunded                    Code = "ALREADY_FUNDED"
	CodeOverFunding                      Code = "OVER_FUNDING"
	CodeOnlyDefaultCategoryCanHaveIncome Code = "ONLY_DEFAULT_CATEGORY_CAN_HAVE_INCOME"
	CodeMissingTransactionFields         Code = "MISSING_TRANSACTION_FIELDS"
	CodeBudgetAccountNotSelected         Code = "BUDGET_ACCOUNT_NOT_SELECTED"
	CodeInvalidAmount                    Code = "INVALID_AMOUNT"
	CodeCategoryUpdateFailed             Code = "CATEGORY_UPDATE_FAILED"
	CodeCategoryDeleteFailed             Code = "CATEGORY_DELETE_FAILED"
	CodeTransactionUpdateFailed          Code = "TRANSACTION_UPDATE_FAILED"
	CodeFailedToCreateBudget             Code = "FAILED_TO_CREATE_BUDGET"
	CodeFailedToCreateCategory           Code = "FAILED_TO_CREATE_CATEGORY"
	CodeFailedToCreateTransaction        Code = "FAILED_TO_CREATE_TRANSACTION"
	CodeFundTransferError                Code = "FUND_TRANSFER_ERROR"
	CodeUnspecifiedDatabaseError         Code = "UNSPECIFIED_DATABASE_ERROR"
)

// Kind groups codes by how a caller is expected to react.
type Kind int

const (
	KindUnspecified Kind = iota
	KindNotFound
	KindConflict
	KindRuleViolation
	KindOperationFailed
)

var codeKinds = map[Code]Kind{
	CodeBudgetAccountNotFound:            KindNotFound,
	CodeCategoryNotFound:                 KindNotFound,
	CodeTransactionNotFound:              KindNotFound,
	CodeCategoryAlreadyExists:            KindConflict,
	CodeAlreadyFunded:                    KindConflict,
	CodeOverFunding:                      KindRuleViolation,
	CodeOnlyDefaultCategoryCanHaveIncome: KindRuleViolation,
	CodeMissingTransactionFields:         KindRuleViolation,
	CodeBudgetAccountNotSelected:         KindRuleViolation,
	CodeInvalidAmount:                    KindRuleViolation,
	CodeCategoryUpdateFailed:             KindOperationFailed,
	CodeCategoryDeleteFailed:             KindOperationFailed,
	CodeTransactionUpdateFailed:          KindOperationFailed,
	CodeFailedToCreateBudget:             KindOperationFailed,
	CodeFailedToCreateCategory:           KindOperationFailed,
	CodeFailedToCreateTransaction:        KindOperationFailed,
	CodeFundTransferError:                KindOperationFailed,
	CodeUnspecifiedDatabaseError:         KindUnspecified,
}

// Kind reports the reaction group of the code.
func (c Code) Kind() Kind {
	return codeKinds[c]
}

// Error is the single error type returned by the ledger engine.
type Error struct {
	Code    Code
	Message string // context such as the entity name or id
	Err     error  // underlying storage error, if any
}

// New builds an Error with the given code and context message.
func New(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Newf is New with a formatted message and no underlying error.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by code, or one of the kind sentinels by kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code.Kind() == KindNotFound
	case ErrDuplicate:
		return e.Code.Kind() == KindConflict
	case ErrValidation:
		return e.Code.Kind() == KindRuleViolation
	case ErrOperationFailed:
		k := e.Code.Kind()
		return k == KindOperationFailed || k == KindUnspecified
	}
	var t *Error
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// Sentinels for errors.Is checks against a specific code.
var (
	ErrBudgetAccountNotFound            = &Error{Code: CodeBudgetAccountNotFound}
	ErrCategoryNotFound                 = &Error{Code: CodeCategoryNotFound}
	ErrTransactionNotFound              = &Error{Code: CodeTransactionNotFound}
	ErrCategoryAlreadyExists            = &Error{Code: CodeCategoryAlreadyExists}
	ErrAlreadyFunded                    = &Error{Code: CodeAlreadyFunded}
	ErrOverFunding                      = &Error{Code: CodeOverFunding}
	ErrOnlyDefaultCategoryCanHaveIncome = &Error{Code: CodeOnlyDefaultCategoryCanHaveIncome}
	ErrMissingTransactionFields         = &Error{Code: CodeMissingTransactionFields}
	ErrBudgetAccountNotSelected         = &Error{Code: CodeBudgetAccountNotSelected}
	ErrInvalidAmount                    = &Error{Code: CodeInvalidAmount}
	ErrCategoryUpdateFailed             = &Error{Code: CodeCategoryUpdateFailed}
	ErrCategoryDeleteFailed             = &Error{Code: CodeCategoryDeleteFailed}
	ErrTransactionUpdateFailed          = &Error{Code: CodeTransactionUpdateFailed}
	ErrFailedToCreateBudget             = &Error{Code: CodeFailedToCreateBudget}
	ErrFailedToCreateCategory           = &Error{Code: CodeFailedToCreateCategory}
	ErrFailedToCreateTransaction        = &Error{Code: CodeFailedToCreateTransaction}
	ErrFundTransferError                = &Error{Code: CodeFundTransferError}
	ErrUnspecifiedDatabaseError         = &Error{Code: CodeUnspecifiedDatabaseError}
)

// CodeOf extracts the code of err, or UNSPECIFIED_DATABASE_ERROR when err is not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnspecifiedDatabaseError
}
