package repository

import (
	"context"

	"github.com/fastygo/backoffice/domain"
)

type ProductRepository interface {
	List(ctx context.Context, businessID int64) ([]domain.Product, error)
	// Save updates the product when it carries an ID and inserts it otherwise.
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
