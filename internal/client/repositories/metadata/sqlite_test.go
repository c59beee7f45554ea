package metadata

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/clouddrive/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", []byte("abc")))

	v, err := r.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), v)
}

func TestGet_MissingKeyIsNotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.ErrorIs(t, err, common.ErrNotFound)
	require.Nil(t, v)
}

func TestSet_Upserts(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestSetMany_WritesAllKeys(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetMany(ctx, map[string][]byte{
		"user":  []byte(`{"id":"u1"}`),
		"token": []byte("t1"),
	}))

	u, err := r.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"u1"}`, string(u))

	tok, err := r.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "t1", string(tok))
}

func TestDelete_RemovesKeys_AndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "user", []byte("u")))
	require.NoError(t, r.Set(ctx, "token", []byte("t")))
	require.NoError(t, r.Set(ctx, "other", []byte("o")))

	require.NoError(t, r.Delete(ctx, "user", "token"))
	require.NoError(t, r.Delete(ctx, "user", "token"))

	_, err := r.Get(ctx, "user")
	require.ErrorIs(t, err, common.ErrNotFound)
	_, err = r.Get(ctx, "token")
	require.ErrorIs(t, err, common.ErrNotFound)

	v, err := r.Get(ctx, "other")
	require.NoError(t, err)
	require.Equal(t, []byte("o"), v)
}

func TestClear_RemovesEverything(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{1}))
	require.NoError(t, r.Set(ctx, "b", []byte{2}))
	require.NoError(t, r.Clear(ctx))

	_, err := r.Get(ctx, "a")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestGet_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	_, err := r.Get(context.Background(), "k")
	require.Error(t, err)
	require.NotErrorIs(t, err, common.ErrNotFound)
	require.Contains(t, err.Error(), "failed to get metadata[k]")
}

func newMockRepo(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db), mock
}

func TestSetMany_RollsBackWhenAWriteFails(t *testing.T) {
	r, mock := newMockRepo(t)
	q := regexp.QuoteMeta("INSERT INTO metadata (key, value) VALUES (?, ?)")

	mock.ExpectBegin()
	mock.ExpectExec(q).WithArgs("token", []byte("t")).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(q).WithArgs("user", []byte("u")).WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := r.SetMany(context.Background(), map[string][]byte{"user": []byte("u"), "token": []byte("t")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to set metadata[user]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_RollsBackWhenADeleteFails(t *testing.T) {
	r, mock := newMockRepo(t)
	q := regexp.QuoteMeta("DELETE FROM metadata WHERE key = ?")

	mock.ExpectBegin()
	mock.ExpectExec(q).WithArgs("user").WillReturnError(errors.New("readonly database"))
	mock.ExpectRollback()

	err := r.Delete(context.Background(), "user", "token")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to delete metadata[user]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClear_DBErrorWrapped(t *testing.T) {
	r, mock := newMockRepo(t)
	mock.ExpectExec("DELETE FROM metadata").WillReturnError(errors.New("locked"))

	err := r.Clear(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to clear metadata")
}
