package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/termplan/internal/db"
)

// FailOnNthExecUoW wraps the SQLite unit of work and fails the FailOn-th
// ExecContext of a write transaction with Err, counting from 1. An import
// writes the catalog row first, then one row per course, so FailOn picks
// the exact course the import breaks on. Reads are never counted.
//
// Read transactions pass straight through; ReadTxs counts them so tests can
// check that planning never opened a write transaction.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	ReadTxs  atomic.Int32
	WriteTxs atomic.Int32
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	u.WriteTxs.Add(1)
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

func (u *FailOnNthExecUoW) WithinReadTx(ctx context.Context, fn db.TxFunc) error {
	u.ReadTxs.Add(1)
	return db.NewSQLiteUnitOfWork(u.DB).WithinReadTx(ctx, fn)
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
