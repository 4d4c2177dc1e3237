package backup

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/internal/config"
	"github.com/fastygo/backoffice/internal/infrastructure/catalog"
	"github.com/fastygo/backoffice/internal/infrastructure/sqlite"
)

type fixture struct {
	uc      *UseCase
	db      *sqlite.Manager
	catalog *catalog.Store
	dir     string
}

func newFixture(t *testing.T, keep int) *fixture {
	t.Helper()
	dir := t.TempDir()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, config.DatabaseConfig{Path: filepath.Join(dir, "live.sqlite")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := catalog.Open(filepath.Join(dir, "catalog.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	uc := New(db, store, Config{Dir: filepath.Join(dir, "backups"), Keep: keep}, nil)
	return &fixture{uc: uc, db: db, catalog: store, dir: dir}
}

func (f *fixture) businessCount(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.Do(context.Background(), func(db *sql.DB) error {
		return db.QueryRow(`SELECT COUNT(*) FROM businesses`).Scan(&n)
	}))
	return n
}

func (f *fixture) addBusiness(t *testing.T) {
	t.Helper()
	require.NoError(t, f.db.Do(context.Background(), func(db *sql.DB) error {
		_, err := db.Exec(`INSERT INTO businesses (name) VALUES ('Extra')`)
		return err
	}))
}

func TestBackupAndRestore(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()
	target := filepath.Join(f.dir, "manual", "copy.sqlite")

	rec, err := f.uc.Backup(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, domain.BackupManual, rec.Kind)
	assert.Equal(t, domain.BackupStatusOK, rec.Status)
	assert.Positive(t, rec.SizeBytes)

	f.addBusiness(t)
	require.Equal(t, 2, f.businessCount(t))

	rec, err = f.uc.Restore(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, domain.BackupRestore, rec.Kind)
	assert.Equal(t, 1, f.businessCount(t))

	history, err := f.uc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.BackupRestore, history[0].Kind)
}

func TestBackupRejectsBadTargets(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()

	_, err := f.uc.Backup(ctx, "")
	var dErr *domain.Error
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, "required", dErr.Fields["path"])

	_, err = f.uc.Backup(ctx, f.db.Path())
	assert.Equal(t, domain.ErrCodeInvalid, domain.CodeOf(err))
}

func TestRestoreRejectsNonDatabase(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()

	garbage := filepath.Join(f.dir, "notes.txt")
	require.NoError(t, os.WriteFile(garbage, []byte("definitely not sqlite"), 0o600))

	_, err := f.uc.Restore(ctx, garbage)
	assert.ErrorIs(t, err, domain.ErrBackupSourceNotSQLite)

	_, err = f.uc.Restore(ctx, filepath.Join(f.dir, "missing.sqlite"))
	assert.Equal(t, domain.ErrCodeInvalid, domain.CodeOf(err))

	_, err = f.uc.Restore(ctx, f.db.Path())
	assert.Equal(t, domain.ErrCodeInvalid, domain.CodeOf(err))

	assert.Equal(t, 1, f.businessCount(t), "live database untouched")
}

func TestAutoBackupPrunesOldCopies(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()

	clock := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)
	f.uc.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})

	var paths []string
	for i := 0; i < 4; i++ {
		rec, err := f.uc.AutoBackup(ctx)
		require.NoError(t, err)
		paths = append(paths, rec.Path)
	}

	for _, p := range paths[:2] {
		assert.NoFileExists(t, p)
	}
	for _, p := range paths[2:] {
		assert.FileExists(t, p)
	}

	entries, err := os.ReadDir(filepath.Join(f.dir, "backups"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	history, err := f.uc.History(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
