package repository

import (
	"context"

	"github.com/fastygo/backoffice/domain"
)

type BusinessRepository interface {
	// First returns the business created first, the one the shell opens on startup.
	First(ctx context.Context) (*domain.Business, error)
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}
