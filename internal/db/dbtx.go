package db

import (
	"context"
	"database/sql"
)

// DBTX is what repositories run their queries against: the pool for
// one-off reads, or the transaction of a unit of work.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// TxFunc is the body of a unit of work. Repositories built from tx see the
// transaction's view of the catalog and plan history.
type TxFunc func(ctx context.Context, tx DBTX) error

// TxMode selects how a unit of work opens its transaction.
type TxMode uint8

const (
	// ReadWrite is used for catalog imports.
	ReadWrite TxMode = iota
	// ReadOnly pins one consistent catalog snapshot for a plan. Any write
	// inside it fails.
	ReadOnly
)

func (m TxMode) String() string {
	if m == ReadOnly {
		return "read-only"
	}
	return "read-write"
}

func (m TxMode) options() *sql.TxOptions {
	return &sql.TxOptions{ReadOnly: m == ReadOnly}
}
