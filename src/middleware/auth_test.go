package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/heart-risk-dashboard/src/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-unit-tests-32chars!"

func sessionRouter(t *testing.T) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager, err := session.NewManager(testSecret, time.Hour)
	require.NoError(t, err)

	router := gin.New()
	router.Use(SessionAuthMiddleware(manager))
	router.GET("/test", func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": sess.Username})
	})
	return router, manager
}

func TestSessionAuthMiddleware(t *testing.T) {
	t.Run("accepts cookie", func(t *testing.T) {
		router, manager := sessionRouter(t)
		token, _, err := manager.Start("admin")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"admin"`)
	})

	t.Run("accepts bearer header", func(t *testing.T) {
		router, manager := sessionRouter(t)
		token, _, err := manager.Start("admin")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects missing token", func(t *testing.T) {
		router, _ := sessionRouter(t)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		router, _ := sessionRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer invalid_token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid token")
	})

	t.Run("rejects ended session", func(t *testing.T) {
		router, manager := sessionRouter(t)
		token, sess, err := manager.Start("admin")
		require.NoError(t, err)
		manager.End(sess.ID)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "session expired")
	})
}

func TestAuthRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limit, stop := AuthRateLimitMiddleware(2)
	defer stop()
	router := gin.New()
	router.POST("/login", limit, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// another client has its own budget
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestKeyRateLimiter_Cleanup(t *testing.T) {
	limiter := newKeyRateLimiter(1, 1, time.Hour)
	defer limiter.Stop()

	limiter.allow("a")
	limiter.mu.Lock()
	limiter.limiters["a"].lastUsed = time.Now().Add(-2 * time.Hour)
	limiter.mu.Unlock()

	limiter.cleanup()
	limiter.mu.Lock()
	assert.Empty(t, limiter.limiters)
	limiter.mu.Unlock()
}

func TestKeyRateLimiter_Stop(t *testing.T) {
	limiter := newKeyRateLimiter(1, 1, time.Hour)
	limiter.Stop()

	select {
	case <-limiter.done:
	default:
		t.Fatal("cleanup loop still running after Stop")
	}

	// idempotent
	limiter.Stop()
}
