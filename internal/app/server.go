package app

import (
	"context"
	"fmt"
	"net"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/backoffice/api/handler"
	"github.com/fastygo/backoffice/internal/infrastructure/monitor"
	"github.com/fastygo/backoffice/internal/middleware"
	"github.com/fastygo/backoffice/internal/router"
	"github.com/fastygo/backoffice/internal/services"
	"github.com/fastygo/backoffice/pkg/httpcontext"
)

// NewMonitor builds the health monitor over the database and, when open, the catalog.
func (a *App) NewMonitor() *monitor.Monitor {
	var sizer monitor.Sizer
	if a.Catalog != nil {
		sizer = a.Catalog
	}
	return monitor.New(a.DB, sizer, a.Config.Health.Interval, a.Logger)
}

// HTTPHandler returns the routed API. Bearer auth is enforced only when a secret is
// configured.
func (a *App) HTTPHandler(mon *monitor.Monitor) fasthttp.RequestHandler {
	adapter := httpcontext.NewAdapter(a.Config.Context.RequestTimeout)
	handlers := router.Handlers{
		Ops:      apiHandler.NewOpsHandler(a.Dispatcher, adapter, a.Logger),
		Business: apiHandler.NewBusinessHandler(a.Services.Business, adapter, a.Logger),
		Health:   apiHandler.NewHealthHandler(mon, adapter, a.Logger),
	}

	guard := middleware.Middleware(middleware.Passthrough)
	if a.Config.Auth.Secret != "" {
		guard = middleware.JWTAuth(a.Config.Auth.Secret, a.Config.Auth.Issuer, a.Logger)
	}
	return router.New(handlers, guard).Handler
}

// Serve runs the health monitor, the backup scheduler and the HTTP API until ctx is
// cancelled. Components are stopped by Close.
func (a *App) Serve(ctx context.Context) error {
	cfg := a.Config

	mon := a.NewMonitor()
	mon.Start()
	a.lifecycle.Register("monitor", func(context.Context) error {
		mon.Stop()
		return nil
	})

	scheduler, err := services.NewBackupScheduler(a.Services.Backups, mon, a.Logger, services.SchedulerConfig{
		Interval: cfg.Backup.Interval,
	})
	if err != nil {
		return err
	}
	scheduler.Start()
	a.lifecycle.Register("backup_scheduler", func(ctx context.Context) error {
		scheduler.Stop(ctx)
		return nil
	})

	server := &fasthttp.Server{
		Handler:      a.HTTPHandler(mon),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	ln, err := net.Listen("tcp", cfg.Address())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Address(), err)
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()
	a.lifecycle.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})
	a.Logger.Info("server started",
		zap.String("address", cfg.Address()),
		zap.String("database", a.DB.Path()),
		zap.Bool("auth", cfg.Auth.Secret != ""),
		zap.Bool("auto_backup", scheduler.Enabled()))

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}
}
