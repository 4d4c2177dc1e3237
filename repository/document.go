package repository

import (
	"context"

	"github.com/fastygo/backoffice/domain"
)

type DocumentRepository interface {
	List(ctx context.Context, businessID int64) ([]domain.Document, error)
	Create(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	Delete(ctx context.Context, id int64) error
}
