package content

import (
	"context"

	"go.uber.org/zap"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/repository"
)

// UseCase covers the social content workflow of a client: posts, their activity log, and
// the caption and hashtag libraries.
type UseCase struct {
	items    repository.ContentRepository
	captions repository.CaptionRepository
	hashtags repository.HashtagSetRepository
	logger   *zap.Logger
}

func New(
	items repository.ContentRepository,
	captions repository.CaptionRepository,
	hashtags repository.HashtagSetRepository,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		items:    items,
		captions: captions,
		hashtags: hashtags,
		logger:   logger,
	}
}

func (uc *UseCase) ListItems(ctx context.Context, clientID int64) ([]domain.ContentItem, error) {
	return uc.items.List(ctx, clientID)
}

func (uc *UseCase) CreateItem(ctx context.Context, item *domain.ContentItem) (*domain.ContentItem, error) {
	if item == nil {
		return nil, domain.ErrInvalidPayload
	}
	item.ID = 0
	if err := domain.Validate(item); err != nil {
		return nil, err
	}
	return uc.items.Create(ctx, item)
}

func (uc *UseCase) UpdateItem(ctx context.Context, item *domain.ContentItem) (*domain.ContentItem, error) {
	if item == nil {
		return nil, domain.ErrInvalidPayload
	}
	if item.ID == 0 {
		return nil, domain.ErrMissingID
	}
	if err := domain.Validate(item); err != nil {
		return nil, err
	}
	return uc.items.Update(ctx, item)
}

func (uc *UseCase) DeleteItem(ctx context.Context, id int64) error {
	return uc.items.Delete(ctx, id)
}

func (uc *UseCase) Activities(ctx context.Context, contentID int64) ([]domain.ContentActivity, error) {
	return uc.items.Activities(ctx, contentID)
}

func (uc *UseCase) ListCaptions(ctx context.Context, clientID int64) ([]domain.Caption, error) {
	return uc.captions.List(ctx, clientID)
}

func (uc *UseCase) SaveCaption(ctx context.Context, caption *domain.Caption) (*domain.Caption, error) {
	if caption == nil {
		return nil, domain.ErrInvalidPayload
	}
	if err := domain.Validate(caption); err != nil {
		return nil, err
	}
	return uc.captions.Create(ctx, caption)
}

func (uc *UseCase) DeleteCaption(ctx context.Context, id int64) error {
	return uc.captions.Delete(ctx, id)
}

func (uc *UseCase) ListHashtagSets(ctx context.Context, clientID int64) ([]domain.HashtagSet, error) {
	return uc.hashtags.List(ctx, clientID)
}

func (uc *UseCase) SaveHashtagSet(ctx context.Context, set *domain.HashtagSet) (*domain.HashtagSet, error) {
	if set == nil {
		return nil, domain.ErrInvalidPayload
	}
	if err := domain.Validate(set); err != nil {
		return nil, err
	}
	return uc.hashtags.Create(ctx, set)
}

func (uc *UseCase) DeleteHashtagSet(ctx context.Context, id int64) error {
	return uc.hashtags.Delete(ctx, id)
}
