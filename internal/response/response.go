package response

import (
	"errors"
	"net/http"

	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Envelope is the JSON shape every endpoint answers with.
type Envelope struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success writes a 200 envelope around data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// SuccessList writes a 200 envelope with a count alongside the data slice.
func SuccessList(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

// Created writes a 201 envelope around data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// notFoundMessages localizes not-found errors per entity.
var notFoundMessages = map[string]string{
	"Espace":      "Espace non trouvé",
	"Réservation": "Réservation non trouvée",
	"Utilisateur": "Utilisateur non trouvé",
}

// Error maps a domain error to its HTTP status and writes the failure
// envelope. Unknown errors answer 500 with a generic message and are
// logged with their cause.
func Error(c *gin.Context, log *zap.Logger, err error) {
	var (
		notFound     *domain.NotFoundError
		validation   *domain.ValidationError
		conflict     *domain.ConflictError
		malformed    *domain.MalformedReferenceError
		unauthorized *domain.UnauthorizedError
		forbidden    *domain.ForbiddenError
	)

	switch {
	case errors.As(err, &notFound):
		message := notFoundMessages[notFound.Entity]
		if message == "" {
			message = notFound.Error()
		}
		c.JSON(http.StatusNotFound, Envelope{Success: false, Error: message})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: validation.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: conflict.Error()})
	case errors.As(err, &malformed):
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: "Format d'identifiant invalide"})
	case errors.As(err, &unauthorized):
		c.JSON(http.StatusUnauthorized, Envelope{Success: false, Error: unauthorized.Error()})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, Envelope{Success: false, Error: forbidden.Error()})
	default:
		log.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Envelope{Success: false, Error: "Erreur serveur"})
	}
}
