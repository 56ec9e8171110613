package handler

import (
	"strconv"

	"github.com/baxirbajja/CMCEspace-api/internal/application"
	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	"github.com/baxirbajja/CMCEspace-api/internal/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler handles HTTP requests for reservation operations.
type ReservationHandler struct {
	service *application.ReservationService
	logger  *zap.Logger
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(service *application.ReservationService, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{service: service, logger: logger}
}

// RegisterRoutes registers all reservation routes on the given router
// group. Creation is public, everything else requires an administrator.
func (h *ReservationHandler) RegisterRoutes(r *gin.RouterGroup, protect, requireAdmin gin.HandlerFunc) {
	reservations := r.Group("/reservations")
	{
		reservations.POST("", h.CreateReservation)

		admin := reservations.Group("")
		admin.Use(protect, requireAdmin)
		{
			admin.GET("", h.ListReservations)
			admin.GET("/:id", h.GetReservation)
			admin.PUT("/:id/status", h.UpdateReservationStatus)
			admin.DELETE("/:id", h.DeleteReservation)
			admin.GET("/history/:year/:month", h.MonthHistory)
		}
	}
}

// CreateReservation handles POST /api/reservations.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req application.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, domain.NewValidationError("Corps de requête invalide"))
		return
	}

	rsv, err := h.service.CreateReservation(c.Request.Context(), req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, rsv)
}

// ListReservations handles GET /api/reservations.
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	reservations, err := h.service.ListReservations(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.SuccessList(c, len(reservations), reservations)
}

// GetReservation handles GET /api/reservations/:id.
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	rsv, err := h.service.GetReservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, rsv)
}

// UpdateReservationStatus handles PUT /api/reservations/:id/status.
func (h *ReservationHandler) UpdateReservationStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, domain.NewValidationError("Corps de requête invalide"))
		return
	}

	rsv, err := h.service.UpdateReservationStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, rsv)
}

// DeleteReservation handles DELETE /api/reservations/:id.
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	if err := h.service.DeleteReservation(c.Request.Context(), id); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, gin.H{})
}

// MonthHistory handles GET /api/reservations/history/:year/:month.
func (h *ReservationHandler) MonthHistory(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.Error(c, h.logger, domain.NewValidationError("Veuillez fournir une année valide"))
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		response.Error(c, h.logger, domain.NewValidationError("Veuillez fournir un mois valide (1-12)"))
		return
	}

	reservations, err := h.service.MonthHistory(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.SuccessList(c, len(reservations), reservations)
}
