package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/entity"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/pkg/pagination"
)

// ContactRepository defines the interface for contact data operations
type ContactRepository interface {
	Create(ctx context.Context, contact *entity.Contact) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Contact, error)
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ContactFilterParams) ([]entity.Contact, int64, error)
	// ListAll returns every contact ordered by display name (export path, unpaginated).
	ListAll(ctx context.Context) ([]entity.Contact, error)
}

// ContactFilterParams contains filtering parameters for contact queries
type ContactFilterParams struct {
	Pagination *pagination.PaginationParams
	Type       *enum.ContactType
	Search     string
}
