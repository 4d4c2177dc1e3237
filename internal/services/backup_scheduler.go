package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/backoffice/domain"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// AutoBackuper writes one automatic backup.
type AutoBackuper interface {
	AutoBackup(ctx context.Context) (*domain.BackupRecord, error)
}

// SchedulerConfig controls how often automatic backups run. A zero Interval disables them.
type SchedulerConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// BackupScheduler snapshots the live database on a fixed interval.
type BackupScheduler struct {
	backups AutoBackuper
	monitor ConnectionHealth
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     SchedulerConfig

	mu      sync.Mutex
	running bool
}

func NewBackupScheduler(backups AutoBackuper, monitor ConnectionHealth, logger *zap.Logger, cfg SchedulerConfig) (*BackupScheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}

	bs := &BackupScheduler{
		backups: backups,
		monitor: monitor,
		logger:  logger,
		cfg:     cfg,
	}
	if cfg.Interval <= 0 {
		return bs, nil
	}

	seconds := int(cfg.Interval.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	bs.cron = cron.New(cron.WithSeconds())
	schedule := fmt.Sprintf("@every %ds", seconds)
	if _, err := bs.cron.AddFunc(schedule, bs.tick); err != nil {
		return nil, fmt.Errorf("schedule backups: %w", err)
	}
	return bs, nil
}

// Enabled reports whether a backup interval is configured.
func (bs *BackupScheduler) Enabled() bool {
	return bs != nil && bs.cron != nil
}

// Start launches the cron scheduler.
func (bs *BackupScheduler) Start() {
	if !bs.Enabled() {
		return
	}
	bs.cron.Start()
	bs.logger.Info("backup scheduler started", zap.Duration("interval", bs.cfg.Interval))
}

// Stop waits for a running backup to finish or ctx to expire.
func (bs *BackupScheduler) Stop(ctx context.Context) {
	if !bs.Enabled() {
		return
	}
	stopCtx := bs.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	bs.logger.Info("backup scheduler stopped")
}

func (bs *BackupScheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), bs.cfg.Timeout)
	defer cancel()
	if _, err := bs.RunOnce(ctx); err != nil {
		bs.logger.Error("automatic backup failed", zap.Error(err))
	}
}

// RunOnce takes one automatic backup unless the database is offline or a backup is
// already in progress. A skipped run returns a nil record and no error.
func (bs *BackupScheduler) RunOnce(ctx context.Context) (*domain.BackupRecord, error) {
	if bs == nil || bs.backups == nil {
		return nil, nil
	}
	if bs.monitor != nil && !bs.monitor.IsOnline() {
		bs.logger.Debug("skipping automatic backup (offline)")
		return nil, nil
	}

	bs.mu.Lock()
	if bs.running {
		bs.mu.Unlock()
		bs.logger.Debug("skipping automatic backup (previous run still active)")
		return nil, nil
	}
	bs.running = true
	bs.mu.Unlock()

	defer func() {
		bs.mu.Lock()
		bs.running = false
		bs.mu.Unlock()
	}()

	return bs.backups.AutoBackup(ctx)
}
