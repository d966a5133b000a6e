package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"projects",
		"macrostages",
		"stages",
		"tasks",
		"weekly_updates",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestMigrationsIdempotent verifies a second run is a no-op
func TestMigrationsIdempotent(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.RunMigrations())
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := db.WithTx(ctx, func(ctx context.Context) error {
		_, err := db.conn(ctx).ExecContext(ctx,
			`INSERT INTO projects (id, name) VALUES (?, ?)`, "p1", "Doomed")
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM projects").Scan(&count))
	require.Equal(t, 0, count, "rolled back insert still visible")
}

func TestWithTx_NestedJoinsOuterTransaction(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := db.WithTx(ctx, func(ctx context.Context) error {
		inner := db.WithTx(ctx, func(ctx context.Context) error {
			_, err := db.conn(ctx).ExecContext(ctx,
				`INSERT INTO projects (id, name) VALUES (?, ?)`, "p1", "Inner")
			return err
		})
		require.NoError(t, inner)
		// The outer failure must take the inner write down with it.
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM projects").Scan(&count))
	require.Equal(t, 0, count)
}

func TestWithTx_Commit(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	err := db.WithTx(ctx, func(ctx context.Context) error {
		_, err := db.conn(ctx).ExecContext(ctx,
			`INSERT INTO projects (id, name) VALUES (?, ?)`, "p1", "Kept")
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM projects").Scan(&count))
	require.Equal(t, 1, count)
}
