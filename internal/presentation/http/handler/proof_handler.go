package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mlegall/facturio-api/internal/application/service"
	"github.com/mlegall/facturio-api/internal/domain/enum"
	"github.com/mlegall/facturio-api/internal/presentation/http/dto/request"
	"github.com/mlegall/facturio-api/internal/presentation/http/dto/response"
)

// ProofHandler handles second-hand proof bundle HTTP requests
type ProofHandler struct {
	proofService *service.ProofService
}

// NewProofHandler creates a new proof handler
func NewProofHandler(proofService *service.ProofService) *ProofHandler {
	return &ProofHandler{proofService: proofService}
}

// Upload handles adding a proof file to a bundle
func (h *ProofHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Aucun fichier fourni")
		return
	}

	bundleID, err := uuid.Parse(c.PostForm("bundle_id"))
	if err != nil {
		response.BadRequest(c, "Identifiant de dossier invalide")
		return
	}
	proofType := enum.ProofType(c.PostForm("type"))

	fileName, mimeType, data, err := readUpload(header)
	if err != nil {
		response.BadRequest(c, "Lecture du fichier impossible")
		return
	}

	proof, err := h.proofService.UploadProof(c.Request.Context(), &service.UploadProofInput{
		BundleID: bundleID,
		Type:     proofType,
		FileName: fileName,
		MimeType: mimeType,
		Data:     data,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Preuve enregistrée", proof)
}

// GetBundle handles retrieving the bundle of a transaction
func (h *ProofHandler) GetBundle(c *gin.Context) {
	transactionID, ok := parseIDParam(c, "transactionId")
	if !ok {
		return
	}

	bundle, err := h.proofService.GetBundle(c.Request.Context(), transactionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dossier de preuves récupéré", bundle)
}

// UpdateBundle handles patching the bundle flags and notes
func (h *ProofHandler) UpdateBundle(c *gin.Context) {
	transactionID, ok := parseIDParam(c, "transactionId")
	if !ok {
		return
	}

	var req request.UpdateBundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	bundle, err := h.proofService.UpdateBundle(c.Request.Context(), &service.UpdateBundleInput{
		TransactionID: transactionID,
		HasAd:         req.HasAd,
		HasPayment:    req.HasPayment,
		HasCession:    req.HasCession,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dossier de preuves mis à jour", bundle)
}

// Download handles serving a stored proof file
func (h *ProofHandler) Download(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	data, filename, mimeType, err := h.proofService.DownloadProof(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(200, mimeType, data)
}

// CessionPdf handles generating the cession certificate of a purchase
func (h *ProofHandler) CessionPdf(c *gin.Context) {
	transactionID, ok := parseIDParam(c, "transactionId")
	if !ok {
		return
	}

	data, filename, err := h.proofService.CessionPdf(c.Request.Context(), transactionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/pdf", data)
}
