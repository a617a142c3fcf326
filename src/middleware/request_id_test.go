package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func requestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": GetRequestID(c)})
	})
	return router
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	w := httptest.NewRecorder()
	requestIDRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	responseID := w.Header().Get(RequestIDHeader)
	// short UUID
	assert.Len(t, responseID, 8)
	assert.Contains(t, w.Body.String(), responseID)
}

func TestRequestIDMiddleware_UsesExistingID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "custom-id-123")

	w := httptest.NewRecorder()
	requestIDRouter().ServeHTTP(w, req)

	assert.Equal(t, "custom-id-123", w.Header().Get(RequestIDHeader))
}

func TestRequestIDMiddleware_ReplacesInvalidID(t *testing.T) {
	for _, bad := range []string{strings.Repeat("a", 65), "has space", "new\nline"} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, bad)

		w := httptest.NewRecorder()
		requestIDRouter().ServeHTTP(w, req)

		assert.Len(t, w.Header().Get(RequestIDHeader), 8, bad)
	}
}
