package settings

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fastygo/backoffice/domain"
	"github.com/fastygo/backoffice/repository"
)

type UseCase struct {
	settings repository.SettingsRepository
	logger   *zap.Logger
}

func New(settings repository.SettingsRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		settings: settings,
		logger:   logger,
	}
}

func (uc *UseCase) GetSettings(ctx context.Context) (domain.Settings, error) {
	return uc.settings.All(ctx)
}

// SaveSettings upserts every submitted key. Blank keys are rejected.
func (uc *UseCase) SaveSettings(ctx context.Context, values domain.Settings) error {
	if len(values) == 0 {
		return nil
	}
	for key := range values {
		if strings.TrimSpace(key) == "" {
			return &domain.Error{
				Code:    domain.ErrCodeInvalid,
				Message: "invalid fields: key",
				Fields:  map[string]string{"key": "required"},
			}
		}
	}
	if err := uc.settings.Save(ctx, values); err != nil {
		return err
	}
	uc.logger.Debug("settings saved", zap.Int("keys", len(values)))
	return nil
}
