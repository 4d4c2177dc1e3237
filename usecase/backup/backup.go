package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/internal/infrastructure/sqlite"
)

// Store is the live database as seen by backup and restore.
type Store interface {
	Path() string
	Snapshot(ctx context.Context, dst string) (int64, error)
	Swap(ctx context.Context, replace func(path string) error) error
}

// Catalog keeps the backup and restore history.
type Catalog interface {
	Append(rec *domain.BackupRecord) error
	List(limit int) ([]domain.BackupRecord, error)
	Prune(kind string, keep int) ([]domain.BackupRecord, error)
}

type Config struct {
	// Dir receives automatic backups.
	Dir string
	// Keep is how many automatic backups survive pruning.
	Keep int
}

const defaultHistory = 20

type UseCase struct {
	store   Store
	catalog Catalog
	cfg     Config
	logger  *zap.Logger
	now     func() time.Time
}

func New(store Store, catalog Catalog, cfg Config, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Keep < 1 {
		cfg.Keep = 1
	}
	return &UseCase{
		store:   store,
		catalog: catalog,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock replaces the clock used to name automatic backups.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Backup copies the live database to path.
func (uc *UseCase) Backup(ctx context.Context, path string) (*domain.BackupRecord, error) {
	if err := uc.checkTarget(path); err != nil {
		return nil, err
	}
	return uc.snapshot(ctx, domain.BackupManual, path)
}

// AutoBackup writes a timestamped copy into the backup directory and prunes the oldest
// automatic copies beyond the configured count.
func (uc *UseCase) AutoBackup(ctx context.Context) (*domain.BackupRecord, error) {
	if uc.cfg.Dir == "" {
		return nil, errors.New("backup directory not configured")
	}
	name := fmt.Sprintf("backoffice-%s.sqlite", uc.now().UTC().Format("20060102-150405.000"))
	rec, err := uc.snapshot(ctx, domain.BackupAuto, filepath.Join(uc.cfg.Dir, name))
	if err != nil {
		return nil, err
	}

	if uc.catalog == nil {
		return rec, nil
	}
	removed, err := uc.catalog.Prune(domain.BackupAuto, uc.cfg.Keep)
	if err != nil {
		uc.logger.Warn("prune backup catalog failed", zap.Error(err))
		return rec, nil
	}
	for _, old := range removed {
		if err := os.Remove(old.Path); err != nil && !os.IsNotExist(err) {
			uc.logger.Warn("remove old backup failed", zap.String("path", old.Path), zap.Error(err))
		}
	}
	return rec, nil
}

// Restore replaces the live database with the SQLite file at path. On failure the
// previous database stays in service.
func (uc *UseCase) Restore(ctx context.Context, path string) (*domain.BackupRecord, error) {
	if path == "" {
		return nil, pathRequired()
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.WrapError(domain.ErrCodeInvalid, "restore source not found", err)
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, domain.ErrBackupSourceNotSQLite
	}
	if ok, err := sqlite.IsDatabaseFile(path); err != nil {
		return nil, err
	} else if !ok {
		return nil, domain.ErrBackupSourceNotSQLite
	}
	if samePath(path, uc.store.Path()) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "restore source is the live database")
	}

	rec := &domain.BackupRecord{Kind: domain.BackupRestore, Path: path, SizeBytes: info.Size(), CreatedAt: uc.now()}
	err = uc.store.Swap(ctx, func(live string) error {
		_, err := sqlite.CopyFile(path, live)
		return err
	})
	uc.record(rec, err)
	if err != nil {
		uc.logger.Error("restore failed", zap.String("source", path), zap.Error(err))
		return nil, err
	}
	uc.logger.Info("database restored", zap.String("source", path))
	return rec, nil
}

// History returns the latest catalog entries, newest first.
func (uc *UseCase) History(ctx context.Context, limit int) ([]domain.BackupRecord, error) {
	if limit <= 0 {
		limit = defaultHistory
	}
	if uc.catalog == nil {
		return []domain.BackupRecord{}, nil
	}
	return uc.catalog.List(limit)
}

func (uc *UseCase) snapshot(ctx context.Context, kind, path string) (*domain.BackupRecord, error) {
	rec := &domain.BackupRecord{Kind: kind, Path: path, CreatedAt: uc.now()}
	size, err := uc.store.Snapshot(ctx, path)
	rec.SizeBytes = size
	uc.record(rec, err)
	if err != nil {
		uc.logger.Error("backup failed", zap.String("kind", kind), zap.String("path", path), zap.Error(err))
		return nil, err
	}
	uc.logger.Info("backup written", zap.String("kind", kind), zap.String("path", path), zap.Int64("bytes", size))
	return rec, nil
}

// record appends rec to the catalog. Catalog trouble never fails the backup itself.
func (uc *UseCase) record(rec *domain.BackupRecord, opErr error) {
	rec.Status = domain.BackupStatusOK
	if opErr != nil {
		rec.Status = domain.BackupStatusFailed
		rec.Error = opErr.Error()
	}
	if uc.catalog == nil {
		return
	}
	if err := uc.catalog.Append(rec); err != nil {
		uc.logger.Warn("backup catalog append failed", zap.Error(err))
	}
}

func (uc *UseCase) checkTarget(path string) error {
	if path == "" {
		return pathRequired()
	}
	if samePath(path, uc.store.Path()) {
		return domain.NewError(domain.ErrCodeInvalid, "backup target is the live database")
	}
	return nil
}

func pathRequired() error {
	return &domain.Error{Code: domain.ErrCodeInvalid, Message: "invalid fields: path", Fields: map[string]string{"path": "required"}}
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
