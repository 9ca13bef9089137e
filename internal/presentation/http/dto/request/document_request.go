package request

import (
	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/domain/enum"
)

// DocumentLineRequest is one billed line of a create or update payload
type DocumentLineRequest struct {
	Description    string              `json:"description" binding:"required"`
	Quantity       float64             `json:"quantity" binding:"required,gt=0"`
	Unit           *string             `json:"unit"`
	UnitPrice      float64             `json:"unit_price" binding:"gte=0"`
	FiscalCategory enum.FiscalCategory `json:"fiscal_category" binding:"required,oneof=BIC_VENTE BIC_PRESTA BNC"`
}

// CreateDocumentRequest is the payload for creating a draft document
type CreateDocumentRequest struct {
	ContactID        uuid.UUID             `json:"contact_id" binding:"required"`
	DocType          enum.DocType          `json:"doc_type" binding:"required,oneof=QUOTE INVOICE CREDIT_NOTE"`
	IssuedDate       string                `json:"issued_date"`
	DueDate          *string               `json:"due_date"`
	PaymentMethod    *enum.PaymentMethod   `json:"payment_method"`
	PaymentTermsDays *int                  `json:"payment_terms_days"`
	Notes            *string               `json:"notes"`
	Terms            *string               `json:"terms"`
	FooterText       *string               `json:"footer_text"`
	Lines            []DocumentLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateDocumentRequest is the payload for updating a draft document
type UpdateDocumentRequest struct {
	ContactID        *uuid.UUID            `json:"contact_id"`
	IssuedDate       *string               `json:"issued_date"`
	DueDate          *string               `json:"due_date"`
	PaymentMethod    *enum.PaymentMethod   `json:"payment_method"`
	PaymentTermsDays *int                  `json:"payment_terms_days"`
	Notes            *string               `json:"notes"`
	Terms            *string               `json:"terms"`
	FooterText       *string               `json:"footer_text"`
	Lines            []DocumentLineRequest `json:"lines" binding:"omitempty,min=1,dive"`
}

// ListDocumentsRequest holds the query filters of the document list
type ListDocumentsRequest struct {
	Page      int     `form:"page"`
	PerPage   int     `form:"per_page"`
	Type      *string `form:"type"`
	Status    *string `form:"status"`
	ContactID *string `form:"contact_id"`
}
