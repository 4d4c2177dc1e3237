package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/fastygo/backoffice/internal/config"
)

// ErrClosed is returned by every call made after Close.
var ErrClosed = errors.New("sqlite: database is closed")

// Manager owns the process-wide database handle. Regular operations share the handle
// under a read lock; Snapshot and Swap take the write lock so a backup or restore never
// overlaps an in-flight query and callers never observe a closed handle.
type Manager struct {
	cfg    config.DatabaseConfig
	logger *zap.Logger

	mu sync.RWMutex
	db *sql.DB
}

// Open creates the database file if needed, applies connection pragmas and runs Migrate.
// Migration failures are logged and do not prevent the manager from serving.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Path == "" {
		return nil, errors.New("sqlite: database path is empty")
	}

	m := &Manager{cfg: cfg, logger: logger}
	db, err := m.open(ctx)
	if err != nil {
		return nil, err
	}
	m.db = db

	logger.Info("database opened", zap.String("path", cfg.Path))
	return m, nil
}

func (m *Manager) open(ctx context.Context) (*sql.DB, error) {
	if dir := filepath.Dir(m.cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dsn(m.cfg))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	maxOpen := m.cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	// Ping alone does not read the file header.
	var n int
	if err := db.QueryRowContext(pingCtx, `SELECT COUNT(*) FROM sqlite_master`).Scan(&n); err != nil {
		db.Close()
		return nil, fmt.Errorf("read schema: %w", err)
	}

	if err := Migrate(ctx, db, m.logger); err != nil {
		m.logger.Error("schema migration incomplete", zap.Error(err))
	}
	return db, nil
}

func dsn(cfg config.DatabaseConfig) string {
	busy := cfg.BusyTimeout.Milliseconds()
	if busy <= 0 {
		busy = 5000
	}
	return fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=%d&_txlock=immediate", cfg.Path, busy)
}

// Path returns the location of the live database file.
func (m *Manager) Path() string {
	return m.cfg.Path
}

// Do runs fn with the shared handle. fn must not call back into the manager.
func (m *Manager) Do(ctx context.Context, fn func(db *sql.DB) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.db == nil {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(m.db)
}

// InTx runs fn inside a transaction, committing when fn returns nil.
func (m *Manager) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return m.Do(ctx, func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		if err := fn(tx); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}

// Ping verifies the handle is usable.
func (m *Manager) Ping(ctx context.Context) error {
	return m.Do(ctx, func(db *sql.DB) error {
		return db.PingContext(ctx)
	})
}

// Snapshot copies a consistent image of the database to dst and returns its size.
func (m *Manager) Snapshot(ctx context.Context, dst string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		return 0, ErrClosed
	}
	if _, err := m.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return 0, fmt.Errorf("checkpoint wal: %w", err)
	}

	size, err := CopyFile(m.cfg.Path, dst)
	if err != nil {
		return 0, err
	}
	m.logger.Info("database snapshot written", zap.String("dst", dst), zap.Int64("bytes", size))
	return size, nil
}

// Swap closes the database, lets replace write a new file at the live path and reopens
// it. When replace or the reopen fails the previous file is put back and reopened, so the
// manager stays usable and the returned error describes what went wrong.
func (m *Manager) Swap(ctx context.Context, replace func(path string) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.cfg.Path
	if m.db != nil {
		if err := m.db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
		m.db = nil
	}
	removeSidecars(path)

	aside := path + ".swap"
	hasOriginal := true
	if err := os.Rename(path, aside); err != nil {
		if !os.IsNotExist(err) {
			return errors.Join(fmt.Errorf("move database aside: %w", err), m.reopen(ctx))
		}
		hasOriginal = false
	}

	swapErr := replace(path)
	var db *sql.DB
	if swapErr == nil {
		db, swapErr = m.open(ctx)
	}
	if swapErr == nil {
		m.db = db
		if hasOriginal {
			if err := os.Remove(aside); err != nil {
				m.logger.Warn("remove previous database copy", zap.String("path", aside), zap.Error(err))
			}
		}
		m.logger.Info("database swapped", zap.String("path", path))
		return nil
	}

	m.logger.Error("database swap failed, reopening previous file", zap.Error(swapErr))
	_ = os.Remove(path)
	removeSidecars(path)
	if hasOriginal {
		if err := os.Rename(aside, path); err != nil {
			return errors.Join(swapErr, fmt.Errorf("restore previous database: %w", err))
		}
	}
	return errors.Join(swapErr, m.reopen(ctx))
}

func (m *Manager) reopen(ctx context.Context) error {
	db, err := m.open(ctx)
	if err != nil {
		return fmt.Errorf("reopen database: %w", err)
	}
	m.db = db
	return nil
}

// Close releases the handle. Later calls return ErrClosed.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	m.logger.Info("database closed")
	return err
}

func removeSidecars(path string) {
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(path + suffix)
	}
}

// CopyFile copies src to dst through a temporary file so dst is never left half written.
func CopyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	if dir := filepath.Dir(dst); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create destination dir: %w", err)
		}
	}

	tmp := dst + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("create destination: %w", err)
	}
	size, err := io.Copy(out, in)
	if err == nil {
		err = out.Sync()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("copy database: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("finalize copy: %w", err)
	}
	return size, nil
}

// sqliteHeader is the magic string every SQLite 3 database file starts with.
const sqliteHeader = "SQLite format 3\x00"

// IsDatabaseFile reports whether path starts with the SQLite file header.
func IsDatabaseFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return string(buf) == sqliteHeader, nil
}
