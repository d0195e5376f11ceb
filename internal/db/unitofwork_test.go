package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertCatalog(ctx context.Context, tx db.DBTX, id, name string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO catalogs (id, name, imported_at) VALUES (?, ?, '2026-01-01T00:00:00Z')`, id, name)
	return err
}

// catalogName reads a catalog name in its own transaction.
func catalogName(t *testing.T, uow *db.SQLiteUnitOfWork, id string) (string, bool) {
	t.Helper()
	var name string
	var found bool
	err := uow.WithinReadTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := tx.QueryRowContext(ctx, `SELECT name FROM catalogs WHERE id = ?`, id).Scan(&name); err != nil {
			return nil
		}
		found = true
		return nil
	})
	require.NoError(t, err)
	return name, found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertCatalog(ctx, tx, "c1", "Arts & Science")
	})
	require.NoError(t, err)

	name, found := catalogName(t, uow, "c1")
	assert.True(t, found, "row should exist after commit")
	assert.Equal(t, "Arts & Science", name)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)
	sentinel := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertCatalog(ctx, tx, "c2", "Engineering"); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, found := catalogName(t, uow, "c2")
	assert.False(t, found, "row should not exist after rollback")
}

func TestWithinTx_RollbackOnConstraintViolation(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertCatalog(ctx, tx, "c3", "Music"); err != nil {
			return err
		}
		return insertCatalog(ctx, tx, "c4", "Music")
	})
	require.Error(t, err)

	_, found := catalogName(t, uow, "c3")
	assert.False(t, found, "first insert must roll back with the second")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertCatalog(ctx, tx, "c5", "Law")
			panic("boom")
		})
	})

	_, found := catalogName(t, uow, "c5")
	assert.False(t, found, "row should not exist after panic rollback")
}

func TestWithinReadTx_RejectsWrites(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinReadTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertCatalog(ctx, tx, "c6", "Medicine")
	})
	require.Error(t, err)

	_, found := catalogName(t, uow, "c6")
	assert.False(t, found)
}

func TestWithinReadTx_ConnectionReturnsWritable(t *testing.T) {
	uow := openTestUoW(t)

	require.NoError(t, uow.WithinReadTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return nil
	}))

	// The in-memory pool has one connection, so this reuses the snapshot's.
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertCatalog(ctx, tx, "c7", "Nursing")
	})
	require.NoError(t, err)
	_, found := catalogName(t, uow, "c7")
	assert.True(t, found)
}

func TestWithinReadTx_ConnectionReturnsWritableAfterCancel(t *testing.T) {
	uow := openTestUoW(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		cancel()
		return ctx.Err()
	})
	require.ErrorIs(t, err, context.Canceled)

	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertCatalog(ctx, tx, "c8", "Pharmacy")
	})
	require.NoError(t, err)
}

func TestWithinReadTx_PinsSnapshot(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	ctx := context.Background()
	require.NoError(t, uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return insertCatalog(ctx, tx, "c9", "Dentistry")
	}))

	count := func(ctx context.Context, tx db.DBTX) int {
		var n int
		require.NoError(t, tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalogs`).Scan(&n))
		return n
	}

	var before, after int
	err := uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		before = count(ctx, tx)
		if err := insertCatalog(ctx, database, "c10", "Forestry"); err != nil {
			return err
		}
		after = count(ctx, tx)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, before)
	assert.Equal(t, before, after, "a concurrent import must not show up mid-snapshot")

	var total int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM catalogs`).Scan(&total))
	assert.Equal(t, 2, total)
}

func TestTxMode_String(t *testing.T) {
	assert.Equal(t, "read-write", db.ReadWrite.String())
	assert.Equal(t, "read-only", db.ReadOnly.String())
}
