package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Transaction is a ledger entry: money received or spent. Entries are
// created directly by the user, or automatically when a document is paid.
type Transaction struct {
	ID             uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Date           string               `gorm:"size:10;not null;index" json:"date"`
	Amount         float64              `gorm:"type:decimal(15,2);not null" json:"amount"`
	Direction      enum.Direction       `gorm:"size:10;not null;index" json:"direction"`
	Label          string               `gorm:"size:255;not null" json:"label"`
	FiscalCategory *enum.FiscalCategory `gorm:"size:20;index" json:"fiscal_category,omitempty"`
	PaymentMethod  *enum.PaymentMethod  `gorm:"size:20" json:"payment_method,omitempty"`
	DocumentID     *uuid.UUID           `gorm:"type:uuid;index" json:"document_id,omitempty"`
	ContactID      *uuid.UUID           `gorm:"type:uuid;index" json:"contact_id,omitempty"`
	IsSecondHand   bool                 `gorm:"default:false" json:"is_second_hand"`
	Notes          *string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`

	// Relationships
	Contact     *Contact     `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	ProofBundle *ProofBundle `gorm:"foreignKey:TransactionID" json:"proof_bundle,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// ProofBundle tracks the evidentiary files required for a second-hand
// purchase. IsComplete is derived from the three flags.
type ProofBundle struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"transaction_id"`
	HasAd         bool      `gorm:"default:false" json:"has_ad"`
	HasPayment    bool      `gorm:"default:false" json:"has_payment"`
	HasCession    bool      `gorm:"default:false" json:"has_cession"`
	IsComplete    bool      `gorm:"default:false" json:"is_complete"`
	Notes         *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	// Relationships
	Proofs []Proof `gorm:"foreignKey:BundleID" json:"proofs,omitempty"`
}

// BeforeCreate generates a UUID before creating a new proof bundle
func (b *ProofBundle) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps the derived completeness flag consistent
func (b *ProofBundle) BeforeSave(tx *gorm.DB) error {
	b.IsComplete = b.HasAd && b.HasPayment && b.HasCession
	return nil
}

// TableName returns the table name for the ProofBundle model
func (ProofBundle) TableName() string {
	return "proof_bundles"
}

// Proof is a single evidentiary file stored in the object store
type Proof struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BundleID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"bundle_id"`
	Type       enum.ProofType `gorm:"size:20;not null" json:"type"`
	FileKey    string         `gorm:"column:file_url;size:512;not null" json:"file_url"`
	FileName   string         `gorm:"size:255;not null" json:"file_name"`
	FileSize   int64          `gorm:"not null" json:"file_size"`
	MimeType   string         `gorm:"size:100;not null" json:"mime_type"`
	UploadedAt time.Time      `gorm:"autoCreateTime" json:"uploaded_at"`
}

// BeforeCreate generates a UUID before creating a new proof
func (p *Proof) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Proof model
func (Proof) TableName() string {
	return "proofs"
}

// Attachment is a generic receipt file linked to any transaction
type Attachment struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	FileKey       string    `gorm:"column:file_url;size:512;not null" json:"file_url"`
	FileName      string    `gorm:"size:255;not null" json:"file_name"`
	FileSize      int64     `gorm:"not null" json:"file_size"`
	MimeType      string    `gorm:"size:100;not null" json:"mime_type"`
	UploadedAt    time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

// BeforeCreate generates a UUID before creating a new attachment
func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Attachment model
func (Attachment) TableName() string {
	return "attachments"
}
