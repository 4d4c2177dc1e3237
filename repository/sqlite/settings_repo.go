package sqlite

import (
	"context"
	"database/sql"

	"github.com/fastygo/backoffice/domain"
	infra "github.com/fastygo/backoffice/internal/infrastructure/sqlite"
	"github.com/fastygo/backoffice/repository"
)

type settingsRepository struct {
	db *infra.Manager
}

// NewSettingsRepository returns a SQLite-backed SettingsRepository.
func NewSettingsRepository(db *infra.Manager) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) All(ctx context.Context) (domain.Settings, error) {
	settings := domain.Settings{}
	err := r.db.Do(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `SELECT key, value FROM settings`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				key   string
				value sql.NullString
			)
			if err := rows.Scan(&key, &value); err != nil {
				return err
			}
			settings[key] = value.String
		}
		return rows.Err()
	})
	return settings, err
}

func (r *settingsRepository) Save(ctx context.Context, settings domain.Settings) error {
	const query = `
	INSERT INTO settings (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	return r.db.InTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for key, value := range settings {
			if _, err := stmt.ExecContext(ctx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}
