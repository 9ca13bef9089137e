package repository

import (
	"context"

	"github.com/mlegall/facturio-api/internal/domain/entity"
)

// IdempotencyRepository stores processed request keys
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
