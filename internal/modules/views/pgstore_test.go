package views

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgres(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresStore(mock), mock
}

func TestPostgresStore_IncrementUsesSingleUpsert(t *testing.T) {
	store, mock := newMockPostgres(t)

	mock.ExpectQuery(`(?s)INSERT INTO post_views.*ON CONFLICT \(post_id\) DO UPDATE SET views = post_views\.views \+ 1`).
		WithArgs("frontend/post-a").
		WillReturnRows(pgxmock.NewRows([]string{"views"}).AddRow(int64(1)))
	mock.ExpectQuery(`INSERT INTO post_views`).
		WithArgs("frontend/post-a").
		WillReturnRows(pgxmock.NewRows([]string{"views"}).AddRow(int64(2)))

	ctx := context.Background()
	n, err := store.Increment(ctx, "frontend/post-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.Increment(ctx, "frontend/post-a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetAbsentIsZero(t *testing.T) {
	store, mock := newMockPostgres(t)

	mock.ExpectQuery(`SELECT views FROM post_views WHERE post_id = \$1`).
		WithArgs("frontend/missing").
		WillReturnRows(pgxmock.NewRows([]string{"views"}))

	n, err := store.Get(context.Background(), "frontend/missing")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetError(t *testing.T) {
	store, mock := newMockPostgres(t)

	mock.ExpectQuery(`SELECT views FROM post_views`).
		WithArgs("k").
		WillReturnError(errors.New("connection refused"))

	_, err := store.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestPostgresStore_All(t *testing.T) {
	store, mock := newMockPostgres(t)

	mock.ExpectQuery(`SELECT post_id, views FROM post_views`).
		WillReturnRows(pgxmock.NewRows([]string{"post_id", "views"}).
			AddRow("a/one", int64(3)).
			AddRow("b/two", int64(1)))

	all, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"a/one": 3, "b/two": 1}, all)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_EnsureSchema(t *testing.T) {
	store, mock := newMockPostgres(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS post_views`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
