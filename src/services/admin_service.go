package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/khabaroff/heart-risk-dashboard/src/logging"
	"github.com/khabaroff/heart-risk-dashboard/src/models"
	"github.com/khabaroff/heart-risk-dashboard/src/repositories"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

// AdminService handles admin registration and login
type AdminService struct {
	repo     repositories.AdminRepository
	hashCost int
}

// NewAdminService creates a new admin service
func NewAdminService(repo repositories.AdminRepository) *AdminService {
	return &AdminService{repo: repo, hashCost: bcrypt.DefaultCost}
}

// SetHashCost overrides the bcrypt cost (tests use bcrypt.MinCost)
func (as *AdminService) SetHashCost(cost int) {
	as.hashCost = cost
}

// Register creates an admin account. It fails with ErrUsernameTaken when the
// username is already registered; exactly one row per username ever exists.
func (as *AdminService) Register(ctx context.Context, username, password string) (*models.AdminUser, error) {
	if strings.TrimSpace(username) == "" || len(username) > 255 {
		return nil, fmt.Errorf("%w: username must be between 1 and 255 characters", ErrInvalidInput)
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", ErrInvalidInput)
	}
	if len(password) > MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, MaxPasswordBytes)
	}

	exists, err := as.repo.Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), as.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := as.repo.Create(ctx, admin); err != nil {
		// lost a race with another registration of the same name
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	return admin, nil
}

// Login verifies username and password
func (as *AdminService) Login(ctx context.Context, username, password string) (*models.AdminUser, error) {
	admin, err := as.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return admin, nil
}

// HasAdmins checks if any admin accounts exist
func (as *AdminService) HasAdmins(ctx context.Context) (bool, error) {
	count, err := as.repo.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SeedAdmin creates the first admin account when none exists yet.
// It reports whether an account was created.
func (as *AdminService) SeedAdmin(ctx context.Context, username, password string) (bool, error) {
	hasAdmins, err := as.HasAdmins(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing admin users: %w", err)
	}
	if hasAdmins {
		return false, nil
	}

	if _, err := as.Register(ctx, username, password); err != nil {
		return false, err
	}

	logger := logging.NewLogger("admin")
	logger.Info().Str("username", username).Msg("initial admin user created")
	return true, nil
}
