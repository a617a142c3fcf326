package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/heart-risk-dashboard/src/middleware"
	"github.com/khabaroff/heart-risk-dashboard/src/services"
	"github.com/khabaroff/heart-risk-dashboard/src/session"
)

// AdminHandler handles admin registration and authentication
type AdminHandler struct {
	adminService *services.AdminService
	sessions     *session.Manager
	cookieSecure bool
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService, sessions *session.Manager, cookieSecure bool) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		sessions:     sessions,
		cookieSecure: cookieSecure,
	}
}

// AdminCredentials is the request body for register and login
type AdminCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginResponse represents the response for successful login
type AdminLoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt int64           `json:"expires_at"`
	Session   session.Session `json:"session"`
}

// HandleRegister creates an admin account. It does not log the caller in.
func (ah *AdminHandler) HandleRegister(c *gin.Context) {
	var req AdminCredentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	admin, err := ah.adminService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "failed to register admin")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   "Admin registered. Please login.",
		"username": admin.Username,
	})
}

// HandleLogin authenticates the admin and starts a session
func (ah *AdminHandler) HandleLogin(c *gin.Context) {
	var req AdminCredentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	admin, err := ah.adminService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "failed to log in")
		return
	}

	token, sess, err := ah.sessions.Start(admin.Username)
	if err != nil {
		respondError(c, err, "failed to start session")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.SessionCookie,
		token,
		int(ah.sessions.TTL().Seconds()),
		"/",
		"",
		ah.cookieSecure,
		true, // HttpOnly
	)

	c.JSON(http.StatusOK, AdminLoginResponse{
		Token:     token,
		ExpiresAt: sess.ExpiresAt.Unix(),
		Session:   sess,
	})
}

// HandleLogout ends the session and clears the cookie
func (ah *AdminHandler) HandleLogout(c *gin.Context) {
	if sess, ok := middleware.CurrentSession(c); ok {
		ah.sessions.End(sess.ID)
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ah.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// AdminStatusResponse represents the response for admin status check
type AdminStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
}

// HandleStatus returns the current admin authentication status
func (ah *AdminHandler) HandleStatus(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, AdminStatusResponse{
		Authenticated: true,
		Username:      sess.Username,
	})
}
