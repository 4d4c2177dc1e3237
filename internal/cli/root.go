// Package cli holds the cobra commands of the backoffice binary.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/backoffice/api/transport"
	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/internal/app"
	"github.com/fastygo/backoffice/internal/config"
	"github.com/fastygo/backoffice/pkg/logger"
	"github.com/fastygo/backoffice/usecase"
)

type globalOptions struct {
	dbPath   string
	logLevel string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "backoffice",
		Short:         "Small-business back-office data service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database file (overrides DB_PATH)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	root.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newBackupCommand(opts),
		newRestoreCommand(opts),
		newInvokeCommand(opts),
		newOpsCommand(opts),
		newTokenCommand(opts),
	)
	return root
}

func (o *globalOptions) config() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.dbPath != "" {
		cfg.Database.Path = o.dbPath
	}
	if o.logLevel != "" {
		cfg.Logger.Level = o.logLevel
	}
	return cfg, nil
}

// open loads configuration and assembles the application. The caller must Close it.
func (o *globalOptions) open(ctx context.Context) (*app.App, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		File:       cfg.Logger.File,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	a.Lifecycle().Register("logger", func(context.Context) error {
		_ = log.Sync()
		return nil
	})
	return a, nil
}

// withApp runs fn against a freshly opened application and closes it afterwards.
func (o *globalOptions) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := o.open(ctx)
	if err != nil {
		return err
	}
	runErr := fn(ctx, a)
	if err := a.Close(context.Background()); err != nil {
		a.Logger.Warn("close failed", zap.Error(err))
	}
	return runErr
}

// invoke dispatches one operation and prints its envelope. The operation's error is
// returned so the process exits non-zero.
func invoke(ctx context.Context, a *app.App, out io.Writer, name string, payload json.RawMessage) error {
	res := a.Invoke(ctx, name, payload)
	env := envelopeOf(res)
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return err
	}
	return res.Err
}

func envelopeOf(res usecase.Result) transport.Envelope {
	if res.Err == nil {
		return transport.NewSuccess(res.Reply, res.Data)
	}
	body := transport.ErrorBody{Message: res.Err.Error()}
	var dErr *domain.Error
	if errors.As(res.Err, &dErr) {
		body.Fields = dErr.Fields
	}
	return transport.NewError(string(domain.CodeOf(res.Err)), res.Reply, body)
}
