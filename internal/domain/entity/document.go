package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Document represents a quote, an invoice or a credit note.
//
// Reference stays null while the document is a draft; it is assigned once,
// by the send transition, and the row becomes immutable except for status
// changes from then on. Dates are canonical ISO strings (YYYY-MM-DD).
type Document struct {
	ID               uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ContactID        uuid.UUID           `gorm:"type:uuid;not null;index" json:"contact_id"`
	DocType          enum.DocType        `gorm:"size:20;not null;index" json:"doc_type"`
	Status           enum.DocStatus      `gorm:"size:20;not null;default:'DRAFT';index" json:"status"`
	Reference        *string             `gorm:"size:50;uniqueIndex" json:"reference"`
	QuoteID          *uuid.UUID          `gorm:"type:uuid;index" json:"quote_id,omitempty"`
	IssuedDate       string              `gorm:"size:10;not null" json:"issued_date"`
	DueDate          *string             `gorm:"size:10" json:"due_date,omitempty"`
	PaymentMethod    *enum.PaymentMethod `gorm:"size:20" json:"payment_method,omitempty"`
	PaymentTermsDays *int                `json:"payment_terms_days,omitempty"`
	TotalHT          float64             `gorm:"column:total_ht;type:decimal(15,2);default:0" json:"total_ht"`
	TotalBicVente    float64             `gorm:"type:decimal(15,2);default:0" json:"total_bic_vente"`
	TotalBicPresta   float64             `gorm:"type:decimal(15,2);default:0" json:"total_bic_presta"`
	TotalBnc         float64             `gorm:"type:decimal(15,2);default:0" json:"total_bnc"`
	Notes            *string             `gorm:"type:text" json:"notes,omitempty"`
	Terms            *string             `gorm:"type:text" json:"terms,omitempty"`
	FooterText       *string             `gorm:"type:text" json:"footer_text,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`

	// Relationships
	Contact *Contact       `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Lines   []DocumentLine `gorm:"foreignKey:DocumentID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new document
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Document model
func (Document) TableName() string {
	return "documents"
}

// DocumentLine is a single billed line of a document. Lines are always
// replaced as a whole set, never patched individually.
type DocumentLine struct {
	ID             uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	DocumentID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"document_id"`
	Position       int                 `gorm:"not null" json:"position"`
	Description    string              `gorm:"type:text;not null" json:"description"`
	Quantity       float64             `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Unit           *string             `gorm:"size:20" json:"unit,omitempty"`
	UnitPrice      float64             `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	Total          float64             `gorm:"type:decimal(15,2);not null" json:"total"`
	FiscalCategory enum.FiscalCategory `gorm:"size:20;not null" json:"fiscal_category"`
}

// BeforeCreate generates a UUID before creating a new document line
func (l *DocumentLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DocumentLine model
func (DocumentLine) TableName() string {
	return "document_lines"
}
