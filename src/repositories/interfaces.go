package repositories

import (
	"context"
	"errors"

	"github.com/khabaroff/heart-risk-dashboard/src/models"
)

var (
	// ErrNotFound indicates the requested row does not exist
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint rejected the write
	ErrDuplicate = errors.New("duplicate record")
)

// AdminRepository defines the interface for admin credential access
type AdminRepository interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	Exists(ctx context.Context, username string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// PatientRepository defines the interface for patient registry access
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id int64) (*models.Patient, error)
	List(ctx context.Context) ([]models.PatientSummary, error)
}

// PredictionRepository defines the interface for the append-only prediction log
type PredictionRepository interface {
	Create(ctx context.Context, record *models.PredictionRecord) error
	GetByID(ctx context.Context, id int64) (*models.PredictionRecord, error)
	CountByLabel(ctx context.Context) (map[models.RiskLabel]int, error)
}

// Store bundles the repositories backed by one database
type Store struct {
	Admins      AdminRepository
	Patients    PatientRepository
	Predictions PredictionRepository
}
