package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type columnMigration struct {
	table      string
	column     string
	definition string
	// afterAdd runs only when the column was actually added.
	afterAdd func(ctx context.Context, db *sql.DB) error
}

type step struct {
	name string
	run  func(ctx context.Context, db *sql.DB) error
}

// Migrate brings the schema up to date and seeds reference data. Every step is
// independent: a failing step is logged, the rest still run, and the joined error of all
// failed steps is returned. Running Migrate on an up-to-date database changes nothing.
func Migrate(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	var steps []step
	for _, t := range tables {
		ddl := t.ddl
		steps = append(steps, step{name: "create " + t.name, run: execStep(ddl)})
	}
	for _, c := range columnMigrations {
		c := c
		steps = append(steps, step{
			name: fmt.Sprintf("add column %s.%s", c.table, c.column),
			run: func(ctx context.Context, db *sql.DB) error {
				return addColumn(ctx, db, c, logger)
			},
		})
	}
	for _, ddl := range indexes {
		steps = append(steps, step{name: "index", run: execStep(ddl)})
	}
	steps = append(steps,
		step{name: "seed businesses", run: seedBusiness},
		step{name: "seed accounts", run: seedAccounts},
		step{name: "seed settings", run: seedSettings},
	)

	var errs []error
	for _, s := range steps {
		if err := s.run(ctx, db); err != nil {
			logger.Error("migration step failed", zap.String("step", s.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}

func execStep(query string) func(ctx context.Context, db *sql.DB) error {
	return func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, query)
		return err
	}
}

func addColumn(ctx context.Context, db *sql.DB, c columnMigration, logger *zap.Logger) error {
	cols, err := Columns(ctx, db, c.table)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return fmt.Errorf("table %s does not exist", c.table)
	}
	if cols[c.column] {
		return nil
	}

	query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.table, c.column, c.definition)
	if _, err := db.ExecContext(ctx, query); err != nil {
		return err
	}
	logger.Info("column added", zap.String("table", c.table), zap.String("column", c.column))

	if c.afterAdd != nil {
		return c.afterAdd(ctx, db)
	}
	return nil
}

// Columns returns the set of column names of table as reported by PRAGMA table_info.
func Columns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
