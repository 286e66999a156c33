package accounts

import (
	"context"
	"database/sql"
	"testing"

	"github.com/apolyakov/reelmark/internal/client/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE accounts (
  name TEXT PRIMARY KEY,
  timestamp INTEGER NOT NULL,
  is_current INTEGER NOT NULL DEFAULT 0,
  is_pending INTEGER NOT NULL DEFAULT 1
);
`)
	require.NoError(t, err)

	return db
}

func newRepo(db *sql.DB) *SQLiteRepository {
	return NewSQLiteRepository(db, storage.NewNotifier())
}

func TestAdd_DuplicateIsNoOp(t *testing.T) {
	db := setupDB(t)
	r := newRepo(db)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, "alice"))
	require.NoError(t, r.Add(ctx, "alice"))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM accounts WHERE name='alice'`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestAdd_NewRowsArePending(t *testing.T) {
	db := setupDB(t)
	r := newRepo(db)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, "bob"))

	var pending int
	require.NoError(t, db.QueryRow(`SELECT is_pending FROM accounts WHERE name='bob'`).Scan(&pending))
	assert.Equal(t, 1, pending)
}

func TestGetAlphabetized_SortsByName(t *testing.T) {
	db := setupDB(t)
	r := newRepo(db)
	ctx := context.Background()

	for _, name := range []string{"mallory", "alice", "bob"} {
		require.NoError(t, r.Add(ctx, name))
	}

	got, err := r.GetAlphabetized(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "alice", got[0].Name)
	assert.Equal(t, "bob", got[1].Name)
	assert.Equal(t, "mallory", got[2].Name)
}

func TestSetIsCurrent_MissingAccountReportsNoRows(t *testing.T) {
	db := setupDB(t)
	r := newRepo(db)
	ctx := context.Background()

	ok, err := r.SetIsCurrent(ctx, "nobody", true)
	require.NoError(t, err)
	assert.False(t, ok)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&n))
	assert.Equal(t, 0, n, "no row mutation on a reference miss")
}

func TestSetIsCurrent_AndGetCurrent(t *testing.T) {
	db := setupDB(t)
	r := newRepo(db)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, "alice"))

	cur, err := r.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur, "no current account yet")

	ok, err := r.SetIsCurrent(ctx, "alice", true)
	require.NoError(t, err)
	require.True(t, ok)

	cur, err = r.GetCurrent(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "alice", cur.Name)
	assert.True(t, cur.IsCurrent)

	ok, err = r.SetIsCurrent(ctx, "alice", false)
	require.NoError(t, err)
	require.True(t, ok)

	cur, err = r.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestSetIsCurrent_DemotesPreviousCurrent(t *testing.T) {
	db := setupDB(t)
	r := newRepo(db)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, "alice"))
	require.NoError(t, r.Add(ctx, "bob"))

	ok, err := r.SetIsCurrent(ctx, "alice", true)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.SetIsCurrent(ctx, "bob", true)
	require.NoError(t, err)
	require.True(t, ok)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM accounts WHERE is_current = 1`).Scan(&n))
	assert.Equal(t, 1, n, "at most one account holds the current flag")

	cur, err := r.GetCurrent(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "bob", cur.Name)
}

func TestSetIsCurrent_MissKeepsExistingCurrent(t *testing.T) {
	db := setupDB(t)
	r := newRepo(db)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, "alice"))
	ok, err := r.SetIsCurrent(ctx, "alice", true)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.SetIsCurrent(ctx, "nobody", true)
	require.NoError(t, err)
	assert.False(t, ok)

	cur, err := r.GetCurrent(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "alice", cur.Name, "a reference miss must not demote the current account")
}

func TestPendingLifecycle(t *testing.T) {
	db := setupDB(t)
	r := newRepo(db)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, "alice"))
	require.NoError(t, r.Add(ctx, "bob"))

	pending, err := r.GetAllPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	require.NoError(t, r.ClearPending(ctx, []string{"alice", "bob"}))

	pending, err = r.GetAllPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestClearPending_EmptyListIsNoOp(t *testing.T) {
	db := setupDB(t)
	r := newRepo(db)

	require.NoError(t, r.ClearPending(context.Background(), nil))
}
