package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mlegall/facturio-api/internal/application/service"
	"github.com/mlegall/facturio-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles revenue tracking HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Urssaf handles the revenue threshold summary
func (h *DashboardHandler) Urssaf(c *gin.Context) {
	now := time.Now()

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		response.BadRequest(c, "Paramètre year invalide")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		response.BadRequest(c, "Paramètre month invalide")
		return
	}
	quarterly := c.Query("quarterly") == "true"

	summary, err := h.dashboardService.Urssaf(c.Request.Context(), year, month, quarterly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Synthèse URSSAF récupérée", summary)
}

// Export handles the ledger CSV export
func (h *DashboardHandler) Export(c *gin.Context) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	data, filename, err := h.dashboardService.ExportCSV(c.Request.Context(), startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "text/csv; charset=utf-8", data)
}
