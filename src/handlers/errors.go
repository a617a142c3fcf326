package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/heart-risk-dashboard/src/logging"
	"github.com/khabaroff/heart-risk-dashboard/src/middleware"
	"github.com/khabaroff/heart-risk-dashboard/src/services"
	"github.com/khabaroff/heart-risk-dashboard/src/session"
)

// Informational messages shown instead of a page
const (
	infoRegisterFirst  = "Please register a patient first."
	infoNoPredictions  = "No predictions made yet."
	errInvalidBody     = "invalid request body"
	errSessionNotFound = "session expired"
)

// respondError maps service errors to status codes. Unknown errors are
// logged and reported as fallback with status 500.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists."})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrPatientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
	case errors.Is(err, services.ErrPredictionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "prediction not found"})
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errSessionNotFound})
	case errors.Is(err, services.ErrClassifier), errors.Is(err, services.ErrUnexpectedLabel):
		logger := logging.ComponentLogger("handlers", middleware.GetRequestID(c))
		logger.Error().Err(err).Msg("model unavailable")
		c.JSON(http.StatusBadGateway, gin.H{"error": "prediction model unavailable"})
	default:
		logger := logging.ComponentLogger("handlers", middleware.GetRequestID(c))
		logger.Error().Err(err).Msg(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// mustSession returns the session set by SessionAuthMiddleware or writes 401
func mustSession(c *gin.Context) (session.Session, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication token"})
		return session.Session{}, false
	}
	return sess, true
}
