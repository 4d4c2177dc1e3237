package catalog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/backoffice/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "catalog.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAppendAndListNewestFirst(t *testing.T) {
	s := openStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, kind := range []string{domain.BackupManual, domain.BackupAuto, domain.BackupRestore} {
		rec := &domain.BackupRecord{Kind: kind, Path: kind, Status: domain.BackupStatusOK, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, s.Append(rec))
		assert.NotEmpty(t, rec.ID)
	}

	all, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, domain.BackupRestore, all[0].Kind)
	assert.Equal(t, domain.BackupManual, all[2].Kind)

	latest, err := s.List(2)
	require.NoError(t, err)
	assert.Len(t, latest, 2)

	size, err := s.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestPruneKeepsNewestOfKind(t *testing.T) {
	s := openStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(&domain.BackupRecord{
			Kind: domain.BackupAuto, Path: string(rune('a' + i)), Status: domain.BackupStatusOK,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, s.Append(&domain.BackupRecord{Kind: domain.BackupManual, Path: "manual", Status: domain.BackupStatusOK, CreatedAt: base}))
	require.NoError(t, s.Append(&domain.BackupRecord{Kind: domain.BackupAuto, Path: "failed", Status: domain.BackupStatusFailed, CreatedAt: base}))

	removed, err := s.Prune(domain.BackupAuto, 2)
	require.NoError(t, err)
	require.Len(t, removed, 3)
	assert.Equal(t, "c", removed[0].Path)
	assert.Equal(t, "a", removed[2].Path)

	left, err := s.List(0)
	require.NoError(t, err)
	paths := make([]string, 0, len(left))
	for _, rec := range left {
		paths = append(paths, rec.Path)
	}
	assert.ElementsMatch(t, []string{"e", "d", "manual", "failed"}, paths)
}

func TestClosedStore(t *testing.T) {
	var s *Store
	_, err := s.List(1)
	assert.Error(t, err)
	assert.NoError(t, s.Close())
}
