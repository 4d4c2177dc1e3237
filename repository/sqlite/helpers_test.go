package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/internal/config"
	infra "github.com/fastygo/backoffice/internal/infrastructure/sqlite"
)

func newTestDB(t *testing.T) *infra.Manager {
	t.Helper()
	m, err := infra.Open(context.Background(), config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "repo.sqlite")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func execSQL(t *testing.T, m *infra.Manager, query string, args ...interface{}) {
	t.Helper()
	require.NoError(t, m.Do(context.Background(), func(db *sql.DB) error {
		_, err := db.Exec(query, args...)
		return err
	}))
}

func countOf(t *testing.T, m *infra.Manager, query string, args ...interface{}) int {
	t.Helper()
	var n int
	require.NoError(t, m.Do(context.Background(), func(db *sql.DB) error {
		return db.QueryRow(query, args...).Scan(&n)
	}))
	return n
}

func seedClient(t *testing.T, m *infra.Manager, name string) *domain.Client {
	t.Helper()
	c, err := NewClientRepository(m).Create(context.Background(), &domain.Client{BusinessID: 1, Name: name})
	require.NoError(t, err)
	return c
}
