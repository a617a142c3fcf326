package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/khabaroff/heart-risk-dashboard/src/app"
	"github.com/khabaroff/heart-risk-dashboard/src/classifier"
	"github.com/khabaroff/heart-risk-dashboard/src/config"
	"github.com/khabaroff/heart-risk-dashboard/src/database"
	"github.com/khabaroff/heart-risk-dashboard/src/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "heart-risk-dashboard",
	Short:         "Heart disease risk dashboard for a single clinic admin",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logging.Setup(logging.Config{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
		})
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve()
	},
}

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the database schema and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		db.Close()
		log.Info().Str("driver", db.Driver()).Msg("database ready")
		return nil
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, initDBCmd, adminCmd)
	// A bare invocation serves
	rootCmd.RunE = serveCmd.RunE

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openDatabase() (*database.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

func serve() error {
	log.Info().
		Int("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Msg("starting server")

	db, err := openDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Str("driver", db.Driver()).Msg("database connected")

	// Without a model the dashboard has nothing to offer
	model, err := classifier.Load(classifier.Options{
		Path:    cfg.ModelPath,
		URL:     cfg.ModelURL,
		Timeout: cfg.ModelTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load prediction model")
	}
	log.Info().Str("path", cfg.ModelPath).Str("url", cfg.ModelURL).Msg("prediction model loaded")

	application, err := app.New(cfg, db, model)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}

	if cfg.EncryptionKey != "" {
		log.Info().Msg("patient notes encryption enabled (AES-256-GCM)")
	} else {
		log.Info().Msg("patient notes encryption disabled (ENCRYPTION_KEY not set)")
	}

	if err := application.SeedAdmin(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to create initial admin user")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	return application.Run(ctx)
}
