package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger is the live database handle.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Sizer reports the number of entries in the backup catalog.
type Sizer interface {
	Size() (int, error)
}

type Monitor struct {
	db      Pinger
	catalog Sizer

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(db Pinger, catalog Sizer, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		db:       db,
		catalog:  catalog,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	m.Refresh()
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// IsOnline reports whether the database answered the last probe.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Database
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

// Refresh probes every dependency once and stores the result.
func (m *Monitor) Refresh() Status {
	catalogOK, entries := m.checkCatalog()
	status := Status{
		Database:       m.checkDatabase(),
		Catalog:        catalogOK,
		CatalogEntries: entries,
		LastCheck:      time.Now(),
	}

	m.mu.Lock()
	prev := m.status
	m.status = status
	m.mu.Unlock()

	if prev.Database && !status.Database {
		m.logger.Warn("database went offline")
	}
	return status
}

func (m *Monitor) checkDatabase() bool {
	if m.db == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := m.db.Ping(ctx); err != nil {
		m.logger.Debug("database ping failed", zap.Error(err))
		return false
	}
	return true
}

func (m *Monitor) checkCatalog() (bool, int) {
	if m.catalog == nil {
		return false, 0
	}
	size, err := m.catalog.Size()
	if err != nil {
		m.logger.Warn("catalog size check failed", zap.Error(err))
		return false, size
	}
	return true, size
}
