package entity

import (
	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sequence is the per-type, per-year counter behind legal document numbering.
// CurrentVal only ever moves forward, through a single atomic
// upsert-and-increment statement (never read-then-write).
type Sequence struct {
	ID         uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	DocType    enum.DocType `gorm:"size:20;not null;uniqueIndex:idx_sequences_type_year" json:"doc_type"`
	Prefix     string       `gorm:"size:10;not null" json:"prefix"`
	Year       int          `gorm:"not null;uniqueIndex:idx_sequences_type_year" json:"year"`
	CurrentVal int          `gorm:"not null;default:0" json:"current_val"`
}

// BeforeCreate generates a UUID before creating a new sequence
func (s *Sequence) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sequence model
func (Sequence) TableName() string {
	return "sequences"
}
