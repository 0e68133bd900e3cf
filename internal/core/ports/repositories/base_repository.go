package repositories

import (
	"context"
	"database/sql"
)

// Querier is the storage handle a repository call runs against: the shared
// connection or an open storage transaction. Repositories never keep one.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TransactionManager owns the connection and hands out handles per operation.
type TransactionManager interface {
	// Conn returns the handle for single-statement operations.
	Conn() Querier

	// WithinTx runs fn in one storage transaction. The transaction commits when fn
	// returns nil and rolls back otherwise, so no partial write is ever persisted.
	WithinTx(ctx context.Context, fn func(q Querier) error) error
}
