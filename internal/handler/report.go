package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkflow/internal/middleware"
	"parkflow/internal/service"
)

// ReportHandler serves the provider income report and the admin
// overview.
type ReportHandler struct {
	reports *service.ReportService
	auth    *service.AuthService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports *service.ReportService, auth *service.AuthService) *ReportHandler {
	return &ReportHandler{reports: reports, auth: auth}
}

// Monthly handles GET /v1/reports/provider/monthly
func (h *ReportHandler) Monthly(c *gin.Context) {
	report, err := h.reports.Monthly(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, h.auth, err)
		return
	}
	respondJSON(c, http.StatusOK, report)
}

// Overview handles GET /v1/admin/overview
func (h *ReportHandler) Overview(c *gin.Context) {
	overview, err := h.reports.Overview(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, h.auth, err)
		return
	}
	respondJSON(c, http.StatusOK, overview)
}
