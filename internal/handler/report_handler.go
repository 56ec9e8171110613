package handler

import (
	"strconv"
	"time"

	"github.com/baxirbajja/CMCEspace-api/internal/application"
	"github.com/baxirbajja/CMCEspace-api/internal/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportHandler handles HTTP requests for the reporting endpoints.
type ReportHandler struct {
	service *application.ReportService
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *application.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{service: service, logger: logger}
}

// RegisterRoutes registers all reporting routes on the given router
// group. Every report is administrator-only.
func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup, protect, requireAdmin gin.HandlerFunc) {
	reports := r.Group("/reports")
	reports.Use(protect, requireAdmin)
	{
		reports.GET("/monthly", h.MonthlyStats)
		reports.GET("/detailed", h.DetailedReport)
		reports.GET("/spaces", h.SpaceUsage)
	}
}

// MonthlyStats handles GET /api/reports/monthly. An absent or
// unparseable year falls back to the current year.
func (h *ReportHandler) MonthlyStats(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		year = time.Now().UTC().Year()
	}

	stats, err := h.service.MonthlyStats(c.Request.Context(), year)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, stats)
}

// DetailedReport handles GET /api/reports/detailed.
func (h *ReportHandler) DetailedReport(c *gin.Context) {
	filter := application.ReportFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Status:    c.Query("status"),
	}

	days, err := h.service.DetailedReport(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	// Count reports the flat reservation total, not the number of day groups.
	total := 0
	for _, day := range days {
		total += day.Count
	}
	response.SuccessList(c, total, days)
}

// SpaceUsage handles GET /api/reports/spaces.
func (h *ReportHandler) SpaceUsage(c *gin.Context) {
	usage, err := h.service.SpaceUsage(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.SuccessList(c, len(usage), usage)
}
