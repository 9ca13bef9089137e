package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"gorm.io/gorm"
)

// DefaultVatExemptText is the VAT-exemption notice printed on every document
const DefaultVatExemptText = "TVA non applicable, art. 293 B du CGI"

// DefaultPaymentTermsDays is the fallback payment delay for new documents
const DefaultPaymentTermsDays = 30

// Settings is the issuer's company profile (a single row)
type Settings struct {
	ID                   uuid.UUID                 `gorm:"type:uuid;primary_key" json:"id"`
	Siret                string                    `gorm:"size:14;not null" json:"siret"`
	CompanyName          string                    `gorm:"size:255;not null" json:"company_name"`
	ActivityType         enum.ActivityType         `gorm:"size:20;not null;default:'BIC_PRESTA'" json:"activity_type"`
	AddressLine1         string                    `gorm:"size:255;not null" json:"address_line1"`
	AddressLine2         *string                   `gorm:"size:255" json:"address_line2,omitempty"`
	PostalCode           string                    `gorm:"size:20;not null" json:"postal_code"`
	City                 string                    `gorm:"size:100;not null" json:"city"`
	Phone                *string                   `gorm:"size:50" json:"phone,omitempty"`
	Email                string                    `gorm:"size:255;not null" json:"email"`
	BankIban             *string                   `gorm:"size:34" json:"bank_iban,omitempty"`
	BankBic              *string                   `gorm:"size:11" json:"bank_bic,omitempty"`
	VatExemptText        string                    `gorm:"size:255;not null" json:"vat_exempt_text"`
	ActivityStartDate    *string                   `gorm:"size:10" json:"activity_start_date,omitempty"`
	DeclarationFrequency enum.DeclarationFrequency `gorm:"size:20;not null;default:'MONTHLY'" json:"declaration_frequency"`
	DefaultPaymentTerms  int                       `gorm:"default:30" json:"default_payment_terms"`
	DefaultPaymentMethod enum.PaymentMethod        `gorm:"size:20;not null;default:'BANK_TRANSFER'" json:"default_payment_method"`
	LogoKey              *string                   `gorm:"column:logo_url;size:512" json:"logo_url,omitempty"`
	CreatedAt            time.Time                 `json:"created_at"`
	UpdatedAt            time.Time                 `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating the settings row
func (s *Settings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Settings model
func (Settings) TableName() string {
	return "settings"
}
