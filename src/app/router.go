package app

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/khabaroff/heart-risk-dashboard/src/handlers"
	"github.com/khabaroff/heart-risk-dashboard/src/middleware"
)

func (a *App) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(a.cfg.AllowedOrigins) > 0 {
		cfg.AllowOrigins = a.cfg.AllowedOrigins
		return cfg
	}

	// Local development only
	cfg.AllowOriginFunc = func(origin string) bool {
		return strings.HasPrefix(origin, "http://localhost") || strings.HasPrefix(origin, "http://127.0.0.1")
	}
	return cfg
}

func (a *App) routes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.Recovery())
	router.Use(cors.New(a.corsConfig()))

	healthHandler := handlers.NewHealthHandler(a.db, a.model != nil)
	adminHandler := handlers.NewAdminHandler(a.AdminService, a.sessions, a.cfg.CookieSecure)
	sessionHandler := handlers.NewSessionHandler(a.sessions)
	patientHandler := handlers.NewPatientHandler(a.PatientService, a.sessions)
	predictHandler := handlers.NewPredictHandler(a.PredictionService, a.PatientService)
	reportHandler := handlers.NewReportHandler(a.ReportService)

	// Health check endpoints
	router.GET("/health", healthHandler.HandleHealth)
	router.GET("/ready", healthHandler.HandleReady)
	router.GET("/info", healthHandler.HandleInfo)

	api := router.Group("/api")

	// Credential endpoints, rate limited per IP
	credentials := api.Group("/admin")
	limit, stopLimiter := middleware.AuthRateLimitMiddleware(a.cfg.LoginRatePerMinute)
	a.stopLimiter = stopLimiter
	credentials.Use(limit)
	{
		credentials.POST("/register", adminHandler.HandleRegister)
		credentials.POST("/login", adminHandler.HandleLogin)
	}

	authed := api.Group("")
	authed.Use(middleware.SessionAuthMiddleware(a.sessions))
	{
		authed.POST("/admin/logout", adminHandler.HandleLogout)
		authed.GET("/admin/status", adminHandler.HandleStatus)

		authed.GET("/session", sessionHandler.HandleGetSession)
		authed.PUT("/session/nav", sessionHandler.HandleSetNav)
		authed.POST("/session/new-patient", sessionHandler.HandleNewPatient)

		authed.POST("/patients", patientHandler.HandleRegisterPatient)
		authed.GET("/patients", patientHandler.HandleListPatients)

		authed.GET("/predict/options", predictHandler.HandleOptions)
		authed.POST("/predict", predictHandler.HandlePredict)
		authed.GET("/predictions/:id/report.pdf", reportHandler.HandleReport)

		authed.GET("/metrics", reportHandler.HandleMetrics)
		authed.GET("/metrics/chart.png", reportHandler.HandleChart)
	}

	return router
}
