package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/heart-risk-dashboard/src/database"
)

var startTime = time.Now()

// Version is reported by /info
var Version = "1.0.0"

// HealthHandler handles health check requests
type HealthHandler struct {
	db         *database.Database
	modelReady bool
}

// NewHealthHandler creates a new health handler. modelReady reports whether
// a classifier was loaded at startup.
func NewHealthHandler(db *database.Database, modelReady bool) *HealthHandler {
	return &HealthHandler{
		db:         db,
		modelReady: modelReady,
	}
}

// HandleHealth returns health status with DB check
func (hh *HealthHandler) HandleHealth(c *gin.Context) {
	start := time.Now()
	err := hh.db.Health(c.Request.Context())
	dbLatency := time.Since(start)

	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"database":   "connected",
		"driver":     hh.db.Driver(),
		"model":      hh.modelReady,
		"db_latency": dbLatency.String(),
		"uptime":     time.Since(startTime).String(),
	})
}

// HandleInfo returns service information
func (hh *HealthHandler) HandleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "heart-risk-dashboard",
		"version": Version,
		"status":  "running",
		"uptime":  time.Since(startTime).String(),
	})
}

// HandleReady reports ready once both the store and the model are usable
func (hh *HealthHandler) HandleReady(c *gin.Context) {
	if !hh.modelReady || hh.db.Health(c.Request.Context()) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ready": true})
}
