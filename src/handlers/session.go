package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/heart-risk-dashboard/src/models"
	"github.com/khabaroff/heart-risk-dashboard/src/session"
)

// SessionHandler exposes the dashboard navigation state
type SessionHandler struct {
	sessions *session.Manager
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// NavRequest selects a dashboard page
type NavRequest struct {
	Page models.NavPage `json:"page" binding:"required"`
}

// HandleGetSession returns the caller's session
func (sh *SessionHandler) HandleGetSession(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess, "pages": models.NavPages})
}

// HandleSetNav switches the current page
func (sh *SessionHandler) HandleSetNav(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	var req NavRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}
	if !req.Page.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown page"})
		return
	}

	updated, err := sh.sessions.Update(sess.ID, func(s *session.Session) {
		s.NavPage = req.Page
	})
	if err != nil {
		respondError(c, err, "failed to update session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": updated})
}

// HandleNewPatient locks the predict page until the next registration
func (sh *SessionHandler) HandleNewPatient(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	updated, err := sh.sessions.Update(sess.ID, func(s *session.Session) {
		s.StartNewPatient()
	})
	if err != nil {
		respondError(c, err, "failed to update session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": updated})
}
