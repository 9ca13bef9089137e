package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	domainRepo "github.com/mlegall/facturio-api/internal/domain/repository"
	"github.com/mlegall/facturio-api/pkg/apperror"
	"gorm.io/gorm"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// NextReference increments the (docType, year) counter through a single
// upsert statement so concurrent callers cannot read the same value.
func (r *sequenceRepository) NextReference(ctx context.Context, docType enum.DocType) (string, error) {
	if !docType.Valid() {
		return "", fmt.Errorf("unknown document type: %s", docType)
	}

	year := time.Now().Year()
	prefix := docType.Prefix()

	var current int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sequences (id, doc_type, prefix, year, current_val)
		VALUES (?, ?, ?, ?, 1)
		ON CONFLICT (doc_type, year)
		DO UPDATE SET current_val = sequences.current_val + 1
		RETURNING current_val`,
		uuid.New(), docType, prefix, year,
	).Scan(&current).Error
	if err != nil {
		return "", apperror.NewSequencingError("Échec de la numérotation du document")
	}

	return fmt.Sprintf("%s%d-%04d", prefix, year, current), nil
}
