package request

import "github.com/mlegall/facturio-api/internal/domain/enum"

// CreateContactRequest is the payload for creating a contact
type CreateContactRequest struct {
	Type         enum.ContactType `json:"type" binding:"omitempty,oneof=CLIENT SUPPLIER BOTH"`
	DisplayName  string           `json:"display_name" binding:"required"`
	LegalName    *string          `json:"legal_name"`
	Email        *string          `json:"email" binding:"omitempty,email"`
	Phone        *string          `json:"phone"`
	AddressLine1 *string          `json:"address_line1"`
	AddressLine2 *string          `json:"address_line2"`
	PostalCode   *string          `json:"postal_code"`
	City         *string          `json:"city"`
	Country      string           `json:"country"`
	IsIndividual bool             `json:"is_individual"`
	Siren        *string          `json:"siren"`
	Notes        *string          `json:"notes"`
}

// UpdateContactRequest is the payload for patching a contact
type UpdateContactRequest struct {
	Type         *enum.ContactType `json:"type" binding:"omitempty,oneof=CLIENT SUPPLIER BOTH"`
	DisplayName  *string           `json:"display_name"`
	LegalName    *string           `json:"legal_name"`
	Email        *string           `json:"email" binding:"omitempty,email"`
	Phone        *string           `json:"phone"`
	AddressLine1 *string           `json:"address_line1"`
	AddressLine2 *string           `json:"address_line2"`
	PostalCode   *string           `json:"postal_code"`
	City         *string           `json:"city"`
	Country      *string           `json:"country"`
	IsIndividual *bool             `json:"is_individual"`
	Siren        *string           `json:"siren"`
	Notes        *string           `json:"notes"`
}

// ListContactsRequest holds the query filters of the contact list
type ListContactsRequest struct {
	Page    int     `form:"page"`
	PerPage int     `form:"per_page"`
	Type    *string `form:"type"`
	Search  string  `form:"search"`
}
