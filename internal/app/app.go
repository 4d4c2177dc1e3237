// Package app assembles the database, repositories, use cases and the operation
// dispatcher shared by every command.
package app

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/backoffice/api/rpc"
	"github.com/fastygo/backoffice/internal/config"
	"github.com/fastygo/backoffice/internal/infrastructure/catalog"
	"github.com/fastygo/backoffice/internal/infrastructure/sqlite"
	"github.com/fastygo/backoffice/internal/services/lifecycle"
	sqliteRepo "github.com/fastygo/backoffice/repository/sqlite"
	"github.com/fastygo/backoffice/usecase"
	accountingUC "github.com/fastygo/backoffice/usecase/accounting"
	backupUC "github.com/fastygo/backoffice/usecase/backup"
	businessUC "github.com/fastygo/backoffice/usecase/business"
	clientUC "github.com/fastygo/backoffice/usecase/client"
	contentUC "github.com/fastygo/backoffice/usecase/content"
	documentUC "github.com/fastygo/backoffice/usecase/document"
	invoiceUC "github.com/fastygo/backoffice/usecase/invoice"
	leadUC "github.com/fastygo/backoffice/usecase/lead"
	productUC "github.com/fastygo/backoffice/usecase/product"
	reportUC "github.com/fastygo/backoffice/usecase/report"
	settingsUC "github.com/fastygo/backoffice/usecase/settings"
	taskUC "github.com/fastygo/backoffice/usecase/task"
)

type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	DB         *sqlite.Manager
	Catalog    *catalog.Store
	Services   rpc.Services
	Dispatcher *usecase.Dispatcher

	lifecycle *lifecycle.Manager
}

// New opens the database (creating and migrating it as needed) and the backup catalog,
// then builds the operation catalog. A catalog that cannot be opened, for example
// because a running server holds its lock, disables backup history but nothing else.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	lc := lifecycle.New(cfg.Context.ShutdownTimeout, logger)

	db, err := sqlite.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	lc.RegisterCloser("database", db)

	var history backupUC.Catalog
	store, err := catalog.Open(cfg.Backup.CatalogPath, "")
	if err != nil {
		logger.Warn("backup catalog unavailable", zap.String("path", cfg.Backup.CatalogPath), zap.Error(err))
	} else {
		lc.RegisterCloser("catalog", store)
		history = store
	}

	services := rpc.Services{
		Business: businessUC.New(sqliteRepo.NewBusinessRepository(db), logger),
		Clients: clientUC.New(
			sqliteRepo.NewClientRepository(db),
			sqliteRepo.NewClientDocumentRepository(db),
			logger,
		),
		Leads: leadUC.New(sqliteRepo.NewLeadRepository(db), logger),
		Accounting: accountingUC.New(
			sqliteRepo.NewAccountRepository(db),
			sqliteRepo.NewTransactionRepository(db),
			logger,
		),
		Documents: documentUC.New(sqliteRepo.NewDocumentRepository(db), logger),
		Invoices:  invoiceUC.New(sqliteRepo.NewInvoiceRepository(db), logger),
		Products:  productUC.New(sqliteRepo.NewProductRepository(db), logger),
		Settings:  settingsUC.New(sqliteRepo.NewSettingsRepository(db), logger),
		Tasks:     taskUC.New(sqliteRepo.NewTaskRepository(db), logger),
		Content: contentUC.New(
			sqliteRepo.NewContentRepository(db),
			sqliteRepo.NewCaptionRepository(db),
			sqliteRepo.NewHashtagSetRepository(db),
			logger,
		),
		Reports: reportUC.New(
			sqliteRepo.NewReportRepository(db),
			sqliteRepo.NewTransactionRepository(db),
			logger,
		),
		Backups: backupUC.New(db, history, backupUC.Config{
			Dir:  cfg.Backup.Dir,
			Keep: cfg.Backup.Keep,
		}, logger),
	}

	dispatcher := usecase.NewDispatcher(logger)
	rpc.Register(dispatcher, services)

	return &App{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Catalog:    store,
		Services:   services,
		Dispatcher: dispatcher,
		lifecycle:  lc,
	}, nil
}

// Invoke runs one named operation in process.
func (a *App) Invoke(ctx context.Context, name string, payload json.RawMessage) usecase.Result {
	return a.Dispatcher.Dispatch(ctx, name, payload)
}

// Lifecycle exposes the shutdown hooks so long-running commands can add their own.
func (a *App) Lifecycle() *lifecycle.Manager {
	return a.lifecycle
}

// Close releases everything New and later registrations opened, newest first.
func (a *App) Close(ctx context.Context) error {
	return a.lifecycle.Shutdown(ctx)
}
