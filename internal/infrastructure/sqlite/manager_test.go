package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/backoffice/internal/config"
)

func openTestManager(t *testing.T) *Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db", "test.sqlite")
	m, err := Open(context.Background(), config.DatabaseConfig{Path: path}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func countRows(t *testing.T, m *Manager, query string, args ...any) int {
	t.Helper()
	var n int
	err := m.Do(context.Background(), func(db *sql.DB) error {
		return db.QueryRow(query, args...).Scan(&n)
	})
	require.NoError(t, err)
	return n
}

func TestOpenCreatesSchemaAndSeeds(t *testing.T) {
	m := openTestManager(t)

	assert.Equal(t, 1, countRows(t, m, `SELECT COUNT(*) FROM businesses`))
	assert.Equal(t, len(defaultAccounts), countRows(t, m, `SELECT COUNT(*) FROM accounts`))
	assert.Equal(t, len(DefaultSettings), countRows(t, m, `SELECT COUNT(*) FROM settings`))
	assert.Equal(t, 1, countRows(t, m, `SELECT COUNT(*) FROM accounts WHERE name = 'Rent' AND tax_category = 'Rent or lease'`))
	assert.Equal(t, 1, countRows(t, m, `SELECT COUNT(*) FROM accounts WHERE name = 'Sales' AND tax_category IS NULL`))

	var fk int
	require.NoError(t, m.Do(context.Background(), func(db *sql.DB) error {
		return db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	}))
	assert.Equal(t, 1, fk)
}

func TestInTxRollsBackOnError(t *testing.T) {
	m := openTestManager(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := m.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO businesses (name) VALUES ('Second')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, countRows(t, m, `SELECT COUNT(*) FROM businesses`))

	require.NoError(t, m.InTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO businesses (name) VALUES ('Second')`)
		return err
	}))
	assert.Equal(t, 2, countRows(t, m, `SELECT COUNT(*) FROM businesses`))
}

func TestSnapshotAndSwap(t *testing.T) {
	m := openTestManager(t)
	ctx := context.Background()

	backup := filepath.Join(t.TempDir(), "backup.sqlite")
	size, err := m.Snapshot(ctx, backup)
	require.NoError(t, err)
	assert.Positive(t, size)

	ok, err := IsDatabaseFile(backup)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, m.InTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO clients (business_id, name) VALUES (1, 'After backup')`)
		return err
	}))
	assert.Equal(t, 1, countRows(t, m, `SELECT COUNT(*) FROM clients`))

	require.NoError(t, m.Swap(ctx, func(path string) error {
		_, err := CopyFile(backup, path)
		return err
	}))
	assert.Equal(t, 0, countRows(t, m, `SELECT COUNT(*) FROM clients`))
	assert.NoFileExists(t, m.Path()+".swap")
}

func TestSwapFailureReopensOriginal(t *testing.T) {
	m := openTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.InTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO clients (business_id, name) VALUES (1, 'Keep me')`)
		return err
	}))

	err := m.Swap(ctx, func(path string) error {
		return os.WriteFile(path, []byte("definitely not a database file, just text"), 0o644)
	})
	require.Error(t, err)

	assert.Equal(t, 1, countRows(t, m, `SELECT COUNT(*) FROM clients WHERE name = 'Keep me'`))
	require.NoError(t, m.Ping(ctx))
}

func TestClosedManager(t *testing.T) {
	m := openTestManager(t)
	require.NoError(t, m.Close())

	err := m.Do(context.Background(), func(*sql.DB) error { return nil })
	assert.ErrorIs(t, err, ErrClosed)
	_, err = m.Snapshot(context.Background(), filepath.Join(t.TempDir(), "x"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestIsDatabaseFile(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short")
	require.NoError(t, os.WriteFile(short, []byte("SQL"), 0o644))

	ok, err := IsDatabaseFile(short)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = IsDatabaseFile(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
