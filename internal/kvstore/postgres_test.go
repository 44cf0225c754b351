package kvstore

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		store := NewPostgresStore(db)

		mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \$1`).
			WithArgs("order:o1").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"id":"o1"}`)))

		value, err := store.Get(ctx, "order:o1")
		assert.NoError(t, err)
		assert.JSONEq(t, `{"id":"o1"}`, string(value))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		store := NewPostgresStore(db)

		mock.ExpectQuery(`SELECT value FROM kv_store`).
			WithArgs("order:missing").
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		_, err = store.Get(ctx, "order:missing")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		store := NewPostgresStore(db)

		mock.ExpectQuery(`SELECT value FROM kv_store`).
			WillReturnError(errors.New("db error"))

		_, err = store.Get(ctx, "order:o1")
		assert.Error(t, err)
	})
}

func TestPostgresStore_GetMany(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		store := NewPostgresStore(db)

		keys := []string{"product:a", "product:b"}
		rows := sqlmock.NewRows([]string{"key", "value"}).
			AddRow("product:a", []byte(`{"id":"a"}`)).
			AddRow("product:b", []byte(`{"id":"b"}`))

		mock.ExpectQuery(`SELECT key, value FROM kv_store WHERE key = ANY\(\$1\)`).
			WithArgs(pq.Array(keys)).
			WillReturnRows(rows)

		values, err := store.GetMany(ctx, keys)
		assert.NoError(t, err)
		assert.Len(t, values, 2)
		assert.JSONEq(t, `{"id":"a"}`, string(values["product:a"]))
	})

	t.Run("EmptyKeys", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		store := NewPostgresStore(db)

		values, err := store.GetMany(ctx, nil)
		assert.NoError(t, err)
		assert.Empty(t, values)
	})
}

func TestPostgresStore_Set(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewPostgresStore(db)

	mock.ExpectExec(`INSERT INTO kv_store \(key, value\)`).
		WithArgs("user:u1", []byte(`{}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = store.Set(context.Background(), "user:u1", []byte(`{}`))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Del(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewPostgresStore(db)

	mock.ExpectExec(`DELETE FROM kv_store WHERE key = \$1`).
		WithArgs("product:p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = store.Del(context.Background(), "product:p1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		store := NewPostgresStore(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO kv_store \(key, value\)\s+VALUES \(\$1, 'null'\)\s+ON CONFLICT \(key\) DO NOTHING`).
			WithArgs("orderIndex").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \$1 FOR UPDATE`).
			WithArgs("orderIndex").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`["o1"]`)))
		mock.ExpectExec(`INSERT INTO kv_store \(key, value\)`).
			WithArgs("orderIndex", []byte(`["o1","o2"]`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = store.Update(ctx, "orderIndex", func(current []byte) ([]byte, error) {
			assert.Equal(t, `["o1"]`, string(current))
			return []byte(`["o1","o2"]`), nil
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	// a missing key must be seeded before the FOR UPDATE select, so the
	// row lock exists even for the first writer of a key
	t.Run("MissingKey_SeedsRowBeforeLock", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		store := NewPostgresStore(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO kv_store \(key, value\)\s+VALUES \(\$1, 'null'\)\s+ON CONFLICT \(key\) DO NOTHING`).
			WithArgs("orderIndex").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \$1 FOR UPDATE`).
			WithArgs("orderIndex").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`null`)))
		mock.ExpectExec(`INSERT INTO kv_store \(key, value\)`).
			WithArgs("orderIndex", []byte(`["o1"]`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = store.Update(ctx, "orderIndex", func(current []byte) ([]byte, error) {
			assert.Nil(t, current)
			return []byte(`["o1"]`), nil
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FnError_RollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		store := NewPostgresStore(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO kv_store \(key, value\)\s+VALUES \(\$1, 'null'\)\s+ON CONFLICT \(key\) DO NOTHING`).
			WithArgs("orderIndex").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT value FROM kv_store WHERE key = \$1 FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`null`)))
		mock.ExpectRollback()

		wantErr := errors.New("bad value")
		err = store.Update(ctx, "orderIndex", func(current []byte) ([]byte, error) {
			return nil, wantErr
		})
		assert.ErrorIs(t, err, wantErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
