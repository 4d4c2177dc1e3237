package repository

import (
	"context"

	"github.com/fastygo/backoffice/domain"
)

// ClientRepository persists clients. Create and Update append the matching activity entry
// in the same transaction as the write.
type ClientRepository interface {
	List(ctx context.Context, businessID int64) ([]domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id int64) error
	Activities(ctx context.Context, clientID int64) ([]domain.ClientActivity, error)
}

type ClientDocumentRepository interface {
	List(ctx context.Context, clientID int64) ([]domain.ClientDocument, error)
	Create(ctx context.Context, doc *domain.ClientDocument) (*domain.ClientDocument, error)
	Delete(ctx context.Context, id int64) error
}
