package db_test

import (
	"context"
	"database/sql"
	"net/url"
	"strings"
	"testing"

	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := db.DSN("/tmp/termplan.db")
	path, query, ok := strings.Cut(dsn, "?")
	require.True(t, ok)
	assert.Equal(t, "/tmp/termplan.db", path)

	q, err := url.ParseQuery(query)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"foreign_keys(1)", "busy_timeout(5000)", "journal_mode(WAL)"}, q["_pragma"])
	assert.Equal(t, "immediate", q.Get("_txlock"))
}

func TestOpenDB_PragmasOnEveryConnection(t *testing.T) {
	database := testutil.NewFileTestDB(t)
	ctx := context.Background()

	var conns []*sql.Conn
	for range 3 {
		conn, err := database.Conn(ctx)
		require.NoError(t, err)
		conns = append(conns, conn)
	}
	for i, conn := range conns {
		var fk int
		var mode string
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA journal_mode`).Scan(&mode))
		assert.Equal(t, 1, fk, "conn %d", i)
		assert.Equal(t, "wal", mode, "conn %d", i)
		require.NoError(t, conn.Close())
	}
}

