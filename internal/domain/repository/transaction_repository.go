package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/entity"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/pkg/pagination"
)

// TransactionRepository defines the interface for ledger data operations
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	// CreateWithBundle inserts the transaction and its empty proof bundle in
	// one database transaction: either both rows exist or neither does.
	CreateWithBundle(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	GetWithProofs(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	Update(ctx context.Context, tx *entity.Transaction) error
	// Delete removes the transaction together with its proof bundle, proofs
	// and attachments rows.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	// ListAll returns every transaction ordered by date ascending
	// (export path, unpaginated).
	ListAll(ctx context.Context) ([]entity.Transaction, error)
	// ListInRange returns all transactions with startDate <= date <= endDate
	// ordered by date ascending (export path, unpaginated).
	ListInRange(ctx context.Context, startDate, endDate string) ([]entity.Transaction, error)
	// SumByCategory aggregates amounts of transactions in the date range
	// with the given direction, grouped by non-null fiscal category.
	SumByCategory(ctx context.Context, direction enum.Direction, startDate, endDate string) (map[enum.FiscalCategory]float64, error)
}

// TransactionFilterParams contains filtering parameters for ledger queries
type TransactionFilterParams struct {
	Pagination     *pagination.PaginationParams
	Direction      *enum.Direction
	FiscalCategory *enum.FiscalCategory
	StartDate      string
	EndDate        string
}
