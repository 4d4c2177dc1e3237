package repository

import (
	"context"

	"github.com/fastygo/backoffice/domain"
)

type LeadRepository interface {
	List(ctx context.Context, businessID int64) ([]domain.Lead, error)
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	// Update writes the editable fields and returns the stored row.
	Update(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	Delete(ctx context.Context, id int64) error
}
