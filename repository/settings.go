package repository

import (
	"context"

	"github.com/fastygo/backoffice/domain"
)

type SettingsRepository interface {
	All(ctx context.Context) (domain.Settings, error)
	// Save upserts every key of settings; keys not present are left untouched.
	Save(ctx context.Context, settings domain.Settings) error
}
