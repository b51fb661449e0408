package duckdb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesSchema(t *testing.T) {
	db, err := NewDB(Settings{DbPath: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO projects (id, name, customer_id, status, progress, revenue_cents) VALUES (?, ?, ?, ?, ?, ?)`,
		1, "Solar Panel Installation", 1, "In Progress", 75.0, int64(2500000),
	)
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM projects WHERE id = ?", 1).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	for _, table := range []string{"customers", "performance_metrics"} {
		err = db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		require.NoError(t, err, table)
		assert.Zero(t, count, table)
	}
}

func TestInTransaction(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		err = InTransaction(context.Background(), db, func(ctx context.Context) error {
			assert.NotNil(t, GetTransaction(ctx))
			return nil
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err = InTransaction(context.Background(), db, func(context.Context) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no transaction outside", func(t *testing.T) {
		assert.Nil(t, GetTransaction(context.Background()))
	})
}
