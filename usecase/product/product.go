package product

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/repository"
)

type UseCase struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

func New(products repository.ProductRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		products: products,
		logger:   logger,
	}
}

func (uc *UseCase) ListProducts(ctx context.Context, businessID int64) ([]domain.Product, error) {
	return uc.products.List(ctx, businessID)
}

// SaveProduct updates the product when it has an ID and creates it otherwise.
func (uc *UseCase) SaveProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if p == nil {
		return nil, domain.ErrInvalidPayload
	}
	if err := domain.Validate(p); err != nil {
		return nil, err
	}
	return uc.products.Save(ctx, p)
}

func (uc *UseCase) DeleteProduct(ctx context.Context, id int64) error {
	return uc.products.Delete(ctx, id)
}
