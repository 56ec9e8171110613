package handler

import (
	"github.com/baxirbajja/CMCEspace-api/internal/application"
	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	"github.com/baxirbajja/CMCEspace-api/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SpaceHandler handles HTTP requests for space operations.
type SpaceHandler struct {
	service *application.SpaceService
	logger  *zap.Logger
}

// NewSpaceHandler creates a new SpaceHandler.
func NewSpaceHandler(service *application.SpaceService, logger *zap.Logger) *SpaceHandler {
	return &SpaceHandler{service: service, logger: logger}
}

// RegisterRoutes registers all space routes on the given router group.
// Reads are public, writes require an authenticated administrator.
func (h *SpaceHandler) RegisterRoutes(r *gin.RouterGroup, protect, requireAdmin gin.HandlerFunc) {
	spaces := r.Group("/spaces")
	{
		spaces.GET("", h.ListSpaces)
		spaces.GET("/:id", h.GetSpace)

		admin := spaces.Group("")
		admin.Use(protect, requireAdmin)
		{
			admin.POST("", h.CreateSpace)
			admin.PUT("/:id", h.UpdateSpace)
			admin.DELETE("/:id", h.DeleteSpace)
		}
	}
}

// ListSpaces handles GET /api/spaces.
func (h *SpaceHandler) ListSpaces(c *gin.Context) {
	spaces, err := h.service.ListSpaces(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.SuccessList(c, len(spaces), spaces)
}

// GetSpace handles GET /api/spaces/:id.
func (h *SpaceHandler) GetSpace(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	sp, err := h.service.GetSpace(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, sp)
}

// CreateSpace handles POST /api/spaces.
func (h *SpaceHandler) CreateSpace(c *gin.Context) {
	var req application.CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, domain.NewValidationError("Corps de requête invalide"))
		return
	}

	sp, err := h.service.CreateSpace(c.Request.Context(), req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, sp)
}

// UpdateSpace handles PUT /api/spaces/:id.
func (h *SpaceHandler) UpdateSpace(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	var req application.UpdateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, domain.NewValidationError("Corps de requête invalide"))
		return
	}

	sp, err := h.service.UpdateSpace(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, sp)
}

// DeleteSpace handles DELETE /api/spaces/:id.
func (h *SpaceHandler) DeleteSpace(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	if err := h.service.DeleteSpace(c.Request.Context(), id); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, gin.H{})
}

// parseID reads the :id path parameter as a UUID.
func parseID(c *gin.Context) (uuid.UUID, error) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewMalformedReferenceError(raw)
	}
	return id, nil
}
