package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fastygo/backoffice/api/transport"
	"github.com/fastygo/backoffice/internal/app"
	"github.com/fastygo/backoffice/internal/middleware"
)

func newServeCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP API and automatic backups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			a, err := opts.open(ctx)
			if err != nil {
				return err
			}
			stop := a.Lifecycle().Listen(cancel)
			defer stop()

			serveErr := a.Serve(ctx)
			return errors.Join(serveErr, a.Close(context.Background()))
		},
	}
}

func newMigrateCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema and seed defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.DB.Ping(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "database ready: %s\n", a.DB.Path())
				return nil
			})
		},
	}
}

func newBackupCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <destination>",
		Short: "Copy the live database to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return invoke(ctx, a, cmd.OutOrStdout(), "backup-data", mustJSON(transport.PathRequest{Path: args[0]}))
			})
		},
	}
}

func newRestoreCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <source>",
		Short: "Replace the live database with a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return invoke(ctx, a, cmd.OutOrStdout(), "restore-data", mustJSON(transport.PathRequest{Path: args[0]}))
			})
		},
	}
}

func newInvokeCommand(opts *globalOptions) *cobra.Command {
	var payload, payloadFile string
	cmd := &cobra.Command{
		Use:   "invoke <operation>",
		Short: "Run one named operation and print its reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := []byte(payload)
			if payloadFile != "" {
				data, err := os.ReadFile(payloadFile)
				if err != nil {
					return fmt.Errorf("read payload: %w", err)
				}
				raw = data
			}
			if len(raw) > 0 && !json.Valid(raw) {
				return fmt.Errorf("payload is not valid JSON")
			}
			return opts.withApp(cmd, func(ctx context.Context, a *app.App) error {
				return invoke(ctx, a, cmd.OutOrStdout(), args[0], raw)
			})
		},
	}
	cmd.Flags().StringVarP(&payload, "payload", "p", "", "JSON payload")
	cmd.Flags().StringVar(&payloadFile, "payload-file", "", "read the JSON payload from a file")
	return cmd
}

func newOpsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the operation catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withApp(cmd, func(_ context.Context, a *app.App) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "OPERATION\tKIND\tREPLY\tERROR REPLY")
				for _, op := range a.Dispatcher.Operations() {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", op.Name, op.Kind, op.Reply, op.ErrorReply)
				}
				return w.Flush()
			})
		},
	}
}

func newTokenCommand(opts *globalOptions) *cobra.Command {
	var subject string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if cfg.Auth.Secret == "" {
				return errors.New("AUTH_SECRET is not set")
			}
			token, err := middleware.IssueToken(cfg.Auth.Secret, cfg.Auth.Issuer, subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "desktop", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (0 = no expiry)")
	return cmd
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
