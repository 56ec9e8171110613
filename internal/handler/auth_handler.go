package handler

import (
	"time"

	"github.com/baxirbajja/CMCEspace-api/internal/application"
	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	"github.com/baxirbajja/CMCEspace-api/internal/middleware"
	"github.com/baxirbajja/CMCEspace-api/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for authentication and account
// management.
type AuthHandler struct {
	service *application.AuthService
	logger  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *application.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

// RegisterRoutes registers all auth routes on the given router group.
// Registration is gated behind an existing administrator session.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, protect, requireAdmin gin.HandlerFunc) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", protect, requireAdmin, h.Register)
		authGroup.GET("/me", protect, h.Me)
		authGroup.GET("/logout", protect, h.Logout)
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, domain.NewValidationError("Corps de requête invalide"))
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Created(c, result)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, domain.NewValidationError("Veuillez fournir un email et un mot de passe"))
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, result)
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil {
		response.Error(c, h.logger, domain.NewUnauthorizedError("Non autorisé à accéder à cette route"))
		return
	}

	account, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, account)
}

// Logout handles GET /api/auth/logout. The presented token is revoked
// until its natural expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID := c.GetString(middleware.ContextTokenID)
	expiresAt, _ := c.Get(middleware.ContextExpires)

	expiry, ok := expiresAt.(time.Time)
	if !ok {
		expiry = time.Now()
	}

	if err := h.service.Logout(c.Request.Context(), tokenID, expiry); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, gin.H{})
}
