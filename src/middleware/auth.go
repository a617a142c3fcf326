package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/heart-risk-dashboard/src/session"
)

// SessionCookie is the cookie carrying the signed session token
const SessionCookie = "session_token"

// SessionKey is the gin context key holding the resolved session
const SessionKey = "session"

// tokenFromRequest reads the token from the cookie, falling back to the
// Authorization header
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// SessionAuthMiddleware requires a valid session token and stores the
// session in the gin context
func SessionAuthMiddleware(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication token"})
			c.Abort()
			return
		}

		sess, err := manager.Resolve(token)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, session.ErrNotFound) {
				msg = "session expired"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			c.Abort()
			return
		}

		c.Set(SessionKey, sess)
		c.Set("username", sess.Username)
		c.Next()
	}
}

// CurrentSession returns the session resolved by SessionAuthMiddleware
func CurrentSession(c *gin.Context) (session.Session, bool) {
	v, exists := c.Get(SessionKey)
	if !exists {
		return session.Session{}, false
	}
	sess, ok := v.(session.Session)
	return sess, ok
}
