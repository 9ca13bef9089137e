package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mlegall/facturio-api/internal/application/service"
	"github.com/mlegall/facturio-api/internal/presentation/http/dto/request"
	"github.com/mlegall/facturio-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles company profile HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles retrieving the company profile
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Configuration récupérée", settings)
}

// Update handles patching the company profile
func (h *SettingsHandler) Update(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Données invalides: "+err.Error())
		return
	}

	input := &service.UpdateSettingsInput{
		Siret:                req.Siret,
		CompanyName:          req.CompanyName,
		ActivityType:         req.ActivityType,
		AddressLine1:         req.AddressLine1,
		AddressLine2:         req.AddressLine2,
		PostalCode:           req.PostalCode,
		City:                 req.City,
		Phone:                req.Phone,
		Email:                req.Email,
		BankIban:             req.BankIban,
		BankBic:              req.BankBic,
		VatExemptText:        req.VatExemptText,
		ActivityStartDate:    req.ActivityStartDate,
		DeclarationFrequency: req.DeclarationFrequency,
		DefaultPaymentTerms:  req.DefaultPaymentTerms,
		DefaultPaymentMethod: req.DefaultPaymentMethod,
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Configuration mise à jour", settings)
}

// UploadLogo handles the company logo upload
func (h *SettingsHandler) UploadLogo(c *gin.Context) {
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

	settings, err := h.settingsService.UploadLogo(c.Request.Context(), fileName, mimeType, data)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Logo enregistré", settings)
}

// Export handles the full data export, served as a downloadable JSON file
func (h *SettingsHandler) Export(c *gin.Context) {
	export, err := h.settingsService.ExportData(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	fileName := fmt.Sprintf("facturio-donnees-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.JSON(200, export)
}

// GetLogo handles serving the company logo
func (h *SettingsHandler) GetLogo(c *gin.Context) {
	data, mimeType, err := h.settingsService.GetLogo(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(200, mimeType, data)
}
