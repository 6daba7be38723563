package db

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql methods common to *sql.DB and *sql.Tx.
// Bulk writes run the same statements inside a UnitOfWork transaction as
// they would against the bare handle, so both satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
