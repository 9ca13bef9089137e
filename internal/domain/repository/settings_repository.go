package repository

import (
	"context"

	"github.com/mlegall/facturio-api/internal/domain/entity"
)

// SettingsRepository manages the single company profile row
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
}
