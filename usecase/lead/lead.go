package lead

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/repository"
)

type UseCase struct {
	leads  repository.LeadRepository
	logger *zap.Logger
}

func New(leads repository.LeadRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		leads:  leads,
		logger: logger,
	}
}

func (uc *UseCase) ListLeads(ctx context.Context, businessID int64) ([]domain.Lead, error) {
	return uc.leads.List(ctx, businessID)
}

func (uc *UseCase) GetLead(ctx context.Context, id int64) (*domain.Lead, error) {
	return uc.leads.GetByID(ctx, id)
}

func (uc *UseCase) CreateLead(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	if lead == nil {
		return nil, domain.ErrInvalidPayload
	}
	lead.ID = 0
	lead.ApplyDefaults()
	if err := domain.Validate(lead); err != nil {
		return nil, err
	}
	return uc.leads.Create(ctx, lead)
}

// UpdateLead stores the edit and returns the row as persisted.
func (uc *UseCase) UpdateLead(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	if lead == nil {
		return nil, domain.ErrInvalidPayload
	}
	if lead.ID == 0 {
		return nil, domain.ErrMissingID
	}
	lead.ApplyDefaults()
	if err := domain.Validate(lead); err != nil {
		return nil, err
	}
	updated, err := uc.leads.Update(ctx, lead)
	if err != nil {
		return nil, err
	}
	if updated.Status == domain.LeadStatusConverted {
		uc.logger.Info("lead converted", zap.Int64("lead_id", updated.ID))
	}
	return updated, nil
}

func (uc *UseCase) DeleteLead(ctx context.Context, id int64) error {
	return uc.leads.Delete(ctx, id)
}
