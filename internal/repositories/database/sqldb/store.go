package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/SscSPs/envelope_budget/internal/apperrors"
	portsrepo "github.com/SscSPs/envelope_budget/internal/core/ports/repositories"
	"github.com/SscSPs/envelope_budget/internal/middleware"
)

// Store owns the single database connection and provides units of work.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Ensure Store implements portsrepo.TransactionManager
var _ portsrepo.TransactionManager = (*Store)(nil)

// Dialect reports the SQL flavour of the store.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Conn returns the shared connection handle.
func (s *Store) Conn() portsrepo.Querier {
	return s.db
}

// Begin starts a new database transaction
func (s *Store) Begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (s *Store) Commit(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (s *Store) Rollback(tx *sql.Tx) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.New(apperrors.CodeUnspecifiedDatabaseError, "failed to rollback transaction", err)
	}
	return nil
}

// WithinTx runs fn inside one transaction, committing only when fn succeeds.
func (s *Store) WithinTx(ctx context.Context, fn func(q portsrepo.Querier) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// Will be ignored if the transaction was committed
		if rbErr := s.Rollback(tx); rbErr != nil {
			logRollbackFailure(ctx, rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return s.Commit(tx)
}

// logRollbackFailure reports a failed rollback on the request-scoped logger.
func logRollbackFailure(ctx context.Context, err error) {
	middleware.GetLoggerFromCtx(ctx).ErrorContext(ctx, "Rollback failed", slog.String("error", err.Error()))
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}
