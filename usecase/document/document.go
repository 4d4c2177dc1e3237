package document

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/repository"
)

type UseCase struct {
	documents repository.DocumentRepository
	logger    *zap.Logger
}

func New(documents repository.DocumentRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		documents: documents,
		logger:    logger,
	}
}

func (uc *UseCase) ListDocuments(ctx context.Context, businessID int64) ([]domain.Document, error) {
	return uc.documents.List(ctx, businessID)
}

func (uc *UseCase) CreateDocument(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	if doc == nil {
		return nil, domain.ErrInvalidPayload
	}
	doc.ID = 0
	if err := domain.Validate(doc); err != nil {
		return nil, err
	}
	return uc.documents.Create(ctx, doc)
}

func (uc *UseCase) DeleteDocument(ctx context.Context, id int64) error {
	return uc.documents.Delete(ctx, id)
}
