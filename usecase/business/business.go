package business

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/repository"
)

type UseCase struct {
	businesses repository.BusinessRepository
	logger     *zap.Logger
}

func New(businesses repository.BusinessRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		businesses: businesses,
		logger:     logger,
	}
}

// Startup returns the business the shell opens with.
func (uc *UseCase) Startup(ctx context.Context) (*domain.Business, error) {
	return uc.businesses.First(ctx)
}

func (uc *UseCase) GetBusiness(ctx context.Context, id int64) (*domain.Business, error) {
	return uc.businesses.GetByID(ctx, id)
}
