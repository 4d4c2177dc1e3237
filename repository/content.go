package repository

import (
	"context"

	"github.com/fastygo/backoffice/domain"
)

// ContentRepository persists content items together with their activity log.
type ContentRepository interface {
	List(ctx context.Context, clientID int64) ([]domain.ContentItem, error)
	GetByID(ctx context.Context, id int64) (*domain.ContentItem, error)
	Create(ctx context.Context, item *domain.ContentItem) (*domain.ContentItem, error)
	Update(ctx context.Context, item *domain.ContentItem) (*domain.ContentItem, error)
	Delete(ctx context.Context, id int64) error
	Activities(ctx context.Context, contentID int64) ([]domain.ContentActivity, error)
}

type CaptionRepository interface {
	List(ctx context.Context, clientID int64) ([]domain.Caption, error)
	Create(ctx context.Context, caption *domain.Caption) (*domain.Caption, error)
	Delete(ctx context.Context, id int64) error
}

type HashtagSetRepository interface {
	List(ctx context.Context, clientID int64) ([]domain.HashtagSet, error)
	Create(ctx context.Context, set *domain.HashtagSet) (*domain.HashtagSet, error)
	Delete(ctx context.Context, id int64) error
}
