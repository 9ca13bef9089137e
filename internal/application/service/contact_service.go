package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/entity"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/internal/domain/repository"
	"github.com/mlegall/facturio-api/pkg/apperror"
	"github.com/mlegall/facturio-api/pkg/pagination"
)

// ContactService manages the client and supplier directory
type ContactService struct {
	contactRepo repository.ContactRepository
}

// NewContactService creates a new contact service
func NewContactService(contactRepo repository.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

// CreateContactInput represents the input for creating a contact
type CreateContactInput struct {
	Type         enum.ContactType
	DisplayName  string
	LegalName    *string
	Email        *string
	Phone        *string
	AddressLine1 *string
	AddressLine2 *string
	PostalCode   *string
	City         *string
	Country      string
	IsIndividual bool
	Siren        *string
	Notes        *string
}

// CreateContact creates a new contact
func (s *ContactService) CreateContact(ctx context.Context, input *CreateContactInput) (*entity.Contact, error) {
	if input.DisplayName == "" {
		return nil, apperror.NewFieldError("display_name", "Le nom est obligatoire")
	}
	contactType := input.Type
	if contactType == "" {
		contactType = enum.ContactClient
	}
	if !contactType.Valid() {
		return nil, apperror.NewFieldError("type", "Type de contact inconnu")
	}

	country := input.Country
	if country == "" {
		country = "FR"
	}

	contact := &entity.Contact{
		Type:         contactType,
		DisplayName:  input.DisplayName,
		LegalName:    input.LegalName,
		Email:        input.Email,
		Phone:        input.Phone,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		PostalCode:   input.PostalCode,
		City:         input.City,
		Country:      country,
		IsIndividual: input.IsIndividual,
		Siren:        input.Siren,
		Notes:        input.Notes,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// GetContact retrieves a contact by ID
func (s *ContactService) GetContact(ctx context.Context, id uuid.UUID) (*entity.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.NewNotFoundError("Contact")
	}
	return contact, nil
}

// ListContactsInput represents the input for listing contacts
type ListContactsInput struct {
	Pagination *pagination.PaginationParams
	Type       *enum.ContactType
	Search     string
}

// ListContacts lists contacts with filtering
func (s *ContactService) ListContacts(ctx context.Context, input *ListContactsInput) (*pagination.PaginatedResult[entity.Contact], error) {
	params := &repository.ContactFilterParams{
		Pagination: input.Pagination,
		Type:       input.Type,
		Search:     input.Search,
	}

	contacts, total, err := s.contactRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(contacts, pag), nil
}

// UpdateContactInput represents the input for updating a contact
type UpdateContactInput struct {
	ID           uuid.UUID
	Type         *enum.ContactType
	DisplayName  *string
	LegalName    *string
	Email        *string
	Phone        *string
	AddressLine1 *string
	AddressLine2 *string
	PostalCode   *string
	City         *string
	Country      *string
	IsIndividual *bool
	Siren        *string
	Notes        *string
}

// UpdateContact patches an existing contact
func (s *ContactService) UpdateContact(ctx context.Context, input *UpdateContactInput) (*entity.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperror.NewNotFoundError("Contact")
	}

	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, apperror.NewFieldError("type", "Type de contact inconnu")
		}
		contact.Type = *input.Type
	}
	if input.DisplayName != nil {
		if *input.DisplayName == "" {
			return nil, apperror.NewFieldError("display_name", "Le nom est obligatoire")
		}
		contact.DisplayName = *input.DisplayName
	}
	if input.LegalName != nil {
		contact.LegalName = input.LegalName
	}
	if input.Email != nil {
		contact.Email = input.Email
	}
	if input.Phone != nil {
		contact.Phone = input.Phone
	}
	if input.AddressLine1 != nil {
		contact.AddressLine1 = input.AddressLine1
	}
	if input.AddressLine2 != nil {
		contact.AddressLine2 = input.AddressLine2
	}
	if input.PostalCode != nil {
		contact.PostalCode = input.PostalCode
	}
	if input.City != nil {
		contact.City = input.City
	}
	if input.Country != nil {
		contact.Country = *input.Country
	}
	if input.IsIndividual != nil {
		contact.IsIndividual = *input.IsIndividual
	}
	if input.Siren != nil {
		contact.Siren = input.Siren
	}
	if input.Notes != nil {
		contact.Notes = input.Notes
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// DeleteContact removes a contact
func (s *ContactService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if contact == nil {
		return apperror.NewNotFoundError("Contact")
	}
	return s.contactRepo.Delete(ctx, id)
}
