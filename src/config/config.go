package config

import (
	cryptoRand "crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Port        int
	DatabaseURL string
	DBMaxConns  int

	JWTSecret    string
	SessionTTL   time.Duration
	CookieSecure bool

	ModelPath    string
	ModelURL     string
	ModelTimeout time.Duration

	LoginRatePerMinute int
	AllowedOrigins     []string
	LogLevel           string
	LogFormat          string

	// Encryption at rest for patient notes
	EncryptionKey string // 64 hex chars = 32 bytes AES-256 key; empty = disabled

	// Admin auto-seed (first run only)
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("DATABASE_URL", "sqlite://heart.db")
	v.SetDefault("DB_MAX_CONNS", 1)
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("MODEL_PATH", "heart.yaml")
	v.SetDefault("MODEL_TIMEOUT", "5s")
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	cfg := &Config{
		Port:               v.GetInt("PORT"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		DBMaxConns:         v.GetInt("DB_MAX_CONNS"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		SessionTTL:         time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,
		CookieSecure:       v.GetBool("COOKIE_SECURE"),
		ModelPath:          v.GetString("MODEL_PATH"),
		ModelURL:           v.GetString("MODEL_URL"),
		ModelTimeout:       v.GetDuration("MODEL_TIMEOUT"),
		LoginRatePerMinute: v.GetInt("LOGIN_RATE_PER_MINUTE"),
		AllowedOrigins:     splitList(v.GetString("ALLOWED_ORIGINS")),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
		EncryptionKey:      v.GetString("ENCRYPTION_KEY"),
		AdminUsername:      v.GetString("ADMIN_USERNAME"),
		AdminPassword:      v.GetString("ADMIN_PASSWORD"),
	}

	// Sessions live in memory, so a per-process secret only costs a re-login
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = generateRandomSecret(48)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.DBMaxConns < 1 {
		errs = append(errs, fmt.Errorf("DB_MAX_CONNS must be at least 1, got %d", c.DBMaxConns))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL_HOURS must be positive"))
	}
	if c.ModelPath == "" && c.ModelURL == "" {
		errs = append(errs, errors.New("one of MODEL_PATH or MODEL_URL is required"))
	}
	if c.ModelTimeout <= 0 {
		errs = append(errs, errors.New("MODEL_TIMEOUT must be positive"))
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		errs = append(errs, errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together"))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// generateRandomSecret generates a cryptographically secure random secret for JWT signing
func generateRandomSecret(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	if _, err := cryptoRand.Read(result); err != nil {
		panic("failed to generate random secret: " + err.Error())
	}
	for i := range result {
		result[i] = charset[result[i]%byte(len(charset))]
	}
	return string(result)
}
