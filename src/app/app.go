// Package app assembles the dashboard: storage, services, session handling
// and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/heart-risk-dashboard/src/classifier"
	"github.com/khabaroff/heart-risk-dashboard/src/config"
	"github.com/khabaroff/heart-risk-dashboard/src/database"
	"github.com/khabaroff/heart-risk-dashboard/src/logging"
	"github.com/khabaroff/heart-risk-dashboard/src/services"
	"github.com/khabaroff/heart-risk-dashboard/src/session"
)

// App holds the wired application
type App struct {
	cfg      *config.Config
	db       *database.Database
	sessions *session.Manager
	model    classifier.Classifier

	AdminService      *services.AdminService
	PatientService    *services.PatientService
	PredictionService *services.PredictionService
	ReportService     *services.ReportService

	cleanup     *services.CleanupService
	stopLimiter func()
	router      *gin.Engine
}

// New wires services and routes over an open database and a loaded model
func New(cfg *config.Config, db *database.Database, model classifier.Classifier) (*App, error) {
	store, err := StoreFor(db)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewManager(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sessions: %w", err)
	}

	notes, err := services.NewNotesCipher(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize encryption: %w", err)
	}

	a := &App{
		cfg:               cfg,
		db:                db,
		sessions:          sessions,
		model:             model,
		AdminService:      services.NewAdminService(store.Admins),
		PatientService:    services.NewPatientService(store.Patients),
		PredictionService: services.NewPredictionService(store.Patients, store.Predictions, model, cfg.ModelTimeout),
		ReportService:     services.NewReportService(store.Patients, store.Predictions),
		cleanup:           services.NewCleanupService(sessions.Store(), 10*time.Minute),
	}
	a.PatientService.SetNotesCipher(notes)
	a.router = a.routes()
	return a, nil
}

// Router returns the HTTP handler
func (a *App) Router() http.Handler {
	return a.router
}

// Sessions exposes the session manager
func (a *App) Sessions() *session.Manager {
	return a.sessions
}

// SeedAdmin creates the configured admin when the credential store is empty
func (a *App) SeedAdmin(ctx context.Context) error {
	if a.cfg.AdminUsername == "" {
		return nil
	}
	_, err := a.AdminService.SeedAdmin(ctx, a.cfg.AdminUsername, a.cfg.AdminPassword)
	return err
}

// Close releases background resources owned by the router. Safe to call
// more than once.
func (a *App) Close() {
	if a.stopLimiter != nil {
		a.stopLimiter()
	}
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully
func (a *App) Run(ctx context.Context) error {
	logger := logging.NewLogger("server")

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	a.cleanup.Start(ctx)
	defer a.cleanup.Stop()
	defer a.Close()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Int("port", a.cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	logger.Info().Msg("server shut down successfully")
	return nil
}
