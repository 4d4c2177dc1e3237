package client

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/repository"
)

type UseCase struct {
	clients   repository.ClientRepository
	documents repository.ClientDocumentRepository
	logger    *zap.Logger
}

func New(clients repository.ClientRepository, documents repository.ClientDocumentRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		clients:   clients,
		documents: documents,
		logger:    logger,
	}
}

func (uc *UseCase) ListClients(ctx context.Context, businessID int64) ([]domain.Client, error) {
	return uc.clients.List(ctx, businessID)
}

func (uc *UseCase) GetClient(ctx context.Context, id int64) (*domain.Client, error) {
	return uc.clients.GetByID(ctx, id)
}

func (uc *UseCase) CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil {
		return nil, domain.ErrInvalidPayload
	}
	client.ID = 0
	if err := domain.Validate(client); err != nil {
		return nil, err
	}
	created, err := uc.clients.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("client created", zap.Int64("client_id", created.ID), zap.Int64("business_id", created.BusinessID))
	return created, nil
}

func (uc *UseCase) UpdateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil {
		return nil, domain.ErrInvalidPayload
	}
	if client.ID == 0 {
		return nil, domain.ErrMissingID
	}
	if err := domain.Validate(client); err != nil {
		return nil, err
	}
	if err := uc.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return uc.clients.GetByID(ctx, client.ID)
}

func (uc *UseCase) DeleteClient(ctx context.Context, id int64) error {
	if err := uc.clients.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("client deleted", zap.Int64("client_id", id))
	return nil
}

func (uc *UseCase) Activities(ctx context.Context, clientID int64) ([]domain.ClientActivity, error) {
	return uc.clients.Activities(ctx, clientID)
}

func (uc *UseCase) ListDocuments(ctx context.Context, clientID int64) ([]domain.ClientDocument, error) {
	return uc.documents.List(ctx, clientID)
}

func (uc *UseCase) CreateDocument(ctx context.Context, doc *domain.ClientDocument) (*domain.ClientDocument, error) {
	if doc == nil {
		return nil, domain.ErrInvalidPayload
	}
	if err := domain.Validate(doc); err != nil {
		return nil, err
	}
	return uc.documents.Create(ctx, doc)
}

func (uc *UseCase) DeleteDocument(ctx context.Context, id int64) error {
	return uc.documents.Delete(ctx, id)
}
