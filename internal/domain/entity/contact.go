package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Contact represents a client, a supplier, or both
type Contact struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Type         enum.ContactType `gorm:"size:20;not null;default:'CLIENT'" json:"type"`
	DisplayName  string           `gorm:"size:255;not null" json:"display_name"`
	LegalName    *string          `gorm:"size:255" json:"legal_name,omitempty"`
	Email        *string          `gorm:"size:255" json:"email,omitempty"`
	Phone        *string          `gorm:"size:50" json:"phone,omitempty"`
	AddressLine1 *string          `gorm:"size:255" json:"address_line1,omitempty"`
	AddressLine2 *string          `gorm:"size:255" json:"address_line2,omitempty"`
	PostalCode   *string          `gorm:"size:20" json:"postal_code,omitempty"`
	City         *string          `gorm:"size:100" json:"city,omitempty"`
	Country      string           `gorm:"size:2;default:'FR'" json:"country"`
	IsIndividual bool             `gorm:"default:false" json:"is_individual"`
	Siren        *string          `gorm:"size:9" json:"siren,omitempty"`
	Notes        *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new contact
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Contact model
func (Contact) TableName() string {
	return "contacts"
}
