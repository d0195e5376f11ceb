package db

import (
	"context"
	"database/sql"
	"fmt"
)

// UnitOfWork runs a TxFunc inside one transaction. An error or panic from
// the callback rolls everything back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
	WithinReadTx(ctx context.Context, fn TxFunc) error
}

// SQLiteUnitOfWork pins a pool connection per transaction so connection
// pragmas set for a read-only snapshot never leak back into the pool.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn TxFunc) error {
	return u.run(ctx, ReadWrite, fn)
}

// WithinReadTx runs fn against a snapshot with the connection switched to
// query_only, since the driver accepts but does not enforce ReadOnly.
func (u *SQLiteUnitOfWork) WithinReadTx(ctx context.Context, fn TxFunc) error {
	return u.run(ctx, ReadOnly, fn)
}

func (u *SQLiteUnitOfWork) run(ctx context.Context, mode TxMode, fn TxFunc) (err error) {
	conn, err := u.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Close()

	if mode == ReadOnly {
		if _, err := conn.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
			return fmt.Errorf("entering %s mode: %w", mode, err)
		}
		defer func() {
			// The caller's ctx may already be done; the reset must still run.
			if _, resetErr := conn.ExecContext(context.Background(), "PRAGMA query_only = OFF"); resetErr != nil && err == nil {
				err = fmt.Errorf("leaving %s mode: %w", mode, resetErr)
			}
		}()
	}

	tx, err := conn.BeginTx(ctx, mode.options())
	if err != nil {
		return fmt.Errorf("beginning %s transaction: %w", mode, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s transaction: %w", mode, err)
	}
	return nil
}
