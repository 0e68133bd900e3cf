package sqldb

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/SscSPs/envelope_budget/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type violation int

const (
	noViolation violation = iota
	uniqueViolation
	foreignKeyViolation
)

// constraintViolation recognises unique and foreign key failures from either driver.
func constraintViolation(err error) violation {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return uniqueViolation
		case "23503":
			return foreignKeyViolation
		}
		return noViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return uniqueViolation
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return foreignKeyViolation
		}
		if liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			msg := liteErr.Error()
			if strings.Contains(msg, "UNIQUE") {
				return uniqueViolation
			}
			if strings.Contains(msg, "FOREIGN KEY") {
				return foreignKeyViolation
			}
		}
	}
	return noViolation
}

// writeErrorCodes picks the domain code for each class of write failure.
type writeErrorCodes struct {
	unique     apperrors.Code
	foreignKey apperrors.Code
	other      apperrors.Code
}

// classify translates a storage error into the ledger error taxonomy.
func classify(err error, codes writeErrorCodes, context string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	code := codes.other
	switch constraintViolation(err) {
	case uniqueViolation:
		if codes.unique != "" {
			code = codes.unique
		}
	case foreignKeyViolation:
		if codes.foreignKey != "" {
			code = codes.foreignKey
		}
	}
	if code == "" {
		code = apperrors.CodeUnspecifiedDatabaseError
	}
	return apperrors.New(code, context, err)
}

// readError maps sql.ErrNoRows to notFound and anything else to UNSPECIFIED_DATABASE_ERROR.
func readError(err error, notFound apperrors.Code, context string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.New(notFound, context, nil)
	}
	return apperrors.New(apperrors.CodeUnspecifiedDatabaseError, context, err)
}
