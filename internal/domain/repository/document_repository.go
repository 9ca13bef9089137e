package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/entity"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/pkg/pagination"
)

// DocumentRepository defines the interface for document data operations.
// Methods returning a pointer return nil (not an error) for unknown ids.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	// GetWithLines eagerly loads the contact and the lines ordered by position.
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	GetStatus(ctx context.Context, id uuid.UUID) (*enum.DocStatus, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	// UpdateStatusIf is a conditional write: the status (plus extra fields)
	// is only applied when the stored status still equals expected. A false
	// return means the row was not in the expected state, typically because
	// a concurrent transition won the race.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, expected, next enum.DocStatus, extra map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *DocumentFilterParams) ([]entity.Document, int64, error)
	// ListAllWithLines returns every document with its lines, ordered by
	// issue date then creation time (export path, unpaginated).
	ListAllWithLines(ctx context.Context) ([]entity.Document, error)
}

// DocumentFilterParams contains filtering parameters for document queries
type DocumentFilterParams struct {
	Pagination *pagination.PaginationParams
	DocType    *enum.DocType
	Status     *enum.DocStatus
	ContactID  *uuid.UUID
}

// DocumentLineRepository defines the interface for document line operations
type DocumentLineRepository interface {
	GetByDocumentID(ctx context.Context, documentID uuid.UUID) ([]entity.DocumentLine, error)
	// ReplaceForDocument swaps the full line set atomically
	// (delete-all-then-insert inside one transaction).
	ReplaceForDocument(ctx context.Context, documentID uuid.UUID, lines []entity.DocumentLine) error
	DeleteByDocumentID(ctx context.Context, documentID uuid.UUID) error
}
