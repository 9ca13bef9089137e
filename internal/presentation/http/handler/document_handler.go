package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/application/service"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/internal/presentation/http/dto/request"
	"github.com/mlegall/facturio-api/internal/presentation/http/dto/response"
	"github.com/mlegall/facturio-api/pkg/pagination"
)

// DocumentHandler handles document-related HTTP requests
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// List handles listing documents with filters
func (h *DocumentHandler) List(c *gin.Context) {
	var req request.ListDocumentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Paramètres de requête invalides")
		return
	}

	params := &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage}
	params.Validate()

	input := &service.ListDocumentsInput{Pagination: params}
	if req.Type != nil {
		docType := enum.DocType(*req.Type)
		if !docType.Valid() {
			response.BadRequest(c, "Type de document inconnu")
			return
		}
		input.DocType = &docType
	}
	if req.Status != nil {
		status := enum.DocStatus(*req.Status)
		if !status.Valid() {
			response.BadRequest(c, "Statut de document inconnu")
			return
		}
		input.Status = &status
	}
	if req.ContactID != nil {
		contactID, err := uuid.Parse(*req.ContactID)
		if err != nil {
			response.BadRequest(c, "Identifiant de contact invalide")
			return
		}
		input.ContactID = &contactID
	}

	result, err := h.documentService.ListDocuments(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Documents récupérés", result)
}

// Create handles creating a draft document
func (h *DocumentHandler) Create(c *gin.Context) {
	var req request.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	input := &service.CreateDocumentInput{
		ContactID:        req.ContactID,
		DocType:          req.DocType,
		IssuedDate:       req.IssuedDate,
		DueDate:          req.DueDate,
		PaymentMethod:    req.PaymentMethod,
		PaymentTermsDays: req.PaymentTermsDays,
		Notes:            req.Notes,
		Terms:            req.Terms,
		FooterText:       req.FooterText,
		Lines:            toLineInputs(req.Lines),
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Document créé", doc)
}

// Get handles retrieving a single document
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document récupéré", doc)
}

// Update handles patching a draft document
func (h *DocumentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	input := &service.UpdateDocumentInput{
		ID:               id,
		ContactID:        req.ContactID,
		IssuedDate:       req.IssuedDate,
		DueDate:          req.DueDate,
		PaymentMethod:    req.PaymentMethod,
		PaymentTermsDays: req.PaymentTermsDays,
		Notes:            req.Notes,
		Terms:            req.Terms,
		FooterText:       req.FooterText,
	}
	if req.Lines != nil {
		input.Lines = toLineInputs(req.Lines)
		input.ReplaceLines = true
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document mis à jour", doc)
}

// Send handles the draft to sent transition
func (h *DocumentHandler) Send(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.SendDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document envoyé", doc)
}

// Pay handles the sent to paid transition
func (h *DocumentHandler) Pay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, tx, err := h.documentService.PayDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document marqué comme payé", gin.H{
		"document":    doc,
		"transaction": tx,
	})
}

// Cancel handles cancelling a document
func (h *DocumentHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.documentService.CancelDocument(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Deleted {
		response.OK(c, "Brouillon supprimé", result)
		return
	}
	response.OK(c, "Document annulé", result)
}

// Convert handles converting a quote into a draft invoice
func (h *DocumentHandler) Convert(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.documentService.ConvertQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Devis converti en facture", invoice)
}

// GetPdf handles downloading the stored PDF snapshot
func (h *DocumentHandler) GetPdf(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	data, filename, err := h.documentService.GetDocumentPdf(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/pdf", data)
}

func toLineInputs(lines []request.DocumentLineRequest) []service.DocumentLineInput {
	inputs := make([]service.DocumentLineInput, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, service.DocumentLineInput{
			Description:    line.Description,
			Quantity:       line.Quantity,
			Unit:           line.Unit,
			UnitPrice:      line.UnitPrice,
			FiscalCategory: line.FiscalCategory,
		})
	}
	return inputs
}
