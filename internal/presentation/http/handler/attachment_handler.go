package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/mlegall/facturio-api/internal/application/service"
	"github.com/mlegall/facturio-api/internal/presentation/http/dto/response"
)

// AttachmentHandler handles transaction receipt HTTP requests
type AttachmentHandler struct {
	attachmentService *service.AttachmentService
}

// NewAttachmentHandler creates a new attachment handler
func NewAttachmentHandler(attachmentService *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// Upload handles adding a receipt to a transaction
func (h *AttachmentHandler) Upload(c *gin.Context) {
	transactionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Aucun fichier fourni")
		return
	}

	fileName, mimeType, data, err := readUpload(header)
	if err != nil {
		response.BadRequest(c, "Lecture du fichier impossible")
		return
	}

	attachment, err := h.attachmentService.UploadAttachment(c.Request.Context(), &service.UploadAttachmentInput{
		TransactionID: transactionID,
		FileName:      fileName,
		MimeType:      mimeType,
		Data:          data,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Justificatif enregistré", attachment)
}

// List handles listing the receipts of a transaction
func (h *AttachmentHandler) List(c *gin.Context) {
	transactionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	attachments, err := h.attachmentService.ListAttachments(c.Request.Context(), transactionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Justificatifs récupérés", attachments)
}

// Download handles serving a stored receipt
func (h *AttachmentHandler) Download(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	data, filename, mimeType, err := h.attachmentService.DownloadAttachment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(200, mimeType, data)
}

// Delete handles removing a receipt
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.attachmentService.DeleteAttachment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
