package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mlegall/facturio-api/internal/application/service"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/internal/presentation/http/dto/request"
	"github.com/mlegall/facturio-api/internal/presentation/http/dto/response"
	"github.com/mlegall/facturio-api/pkg/pagination"
)

// ContactHandler handles contact-related HTTP requests
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// List handles listing contacts
func (h *ContactHandler) List(c *gin.Context) {
	var req request.ListContactsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Paramètres de requête invalides")
		return
	}

	params := &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage}
	params.Validate()

	input := &service.ListContactsInput{
		Pagination: params,
		Search:     req.Search,
	}
	if req.Type != nil {
		contactType := enum.ContactType(*req.Type)
		if !contactType.Valid() {
			response.BadRequest(c, "Type de contact inconnu")
			return
		}
		input.Type = &contactType
	}

	result, err := h.contactService.ListContacts(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Contacts récupérés", result)
}

// Create handles creating a contact
func (h *ContactHandler) Create(c *gin.Context) {
	var req request.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	input := &service.CreateContactInput{
		Type:         req.Type,
		DisplayName:  req.DisplayName,
		LegalName:    req.LegalName,
		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		PostalCode:   req.PostalCode,
		City:         req.City,
		Country:      req.Country,
		IsIndividual: req.IsIndividual,
		Siren:        req.Siren,
		Notes:        req.Notes,
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Contact créé", contact)
}

// Get handles retrieving a single contact
func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	contact, err := h.contactService.GetContact(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contact récupéré", contact)
}

// Update handles patching a contact
func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	input := &service.UpdateContactInput{
		ID:           id,
		Type:         req.Type,
		DisplayName:  req.DisplayName,
		LegalName:    req.LegalName,
		Email:        req.Email,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		PostalCode:   req.PostalCode,
		City:         req.City,
		Country:      req.Country,
		IsIndividual: req.IsIndividual,
		Siren:        req.Siren,
		Notes:        req.Notes,
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Contact mis à jour", contact)
}

// Delete handles removing a contact
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.contactService.DeleteContact(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
