package repository

import (
	"context"

	"github.com/mlegall/facturio-api/internal/domain/enum"
)

// SequenceRepository issues legal document references.
type SequenceRepository interface {
	// NextReference atomically increments the (docType, current year)
	// counter and returns the formatted reference, e.g. "FAC-2026-0042".
	// Two concurrent calls never return the same value and never skip one.
	NextReference(ctx context.Context, docType enum.DocType) (string, error)
}
