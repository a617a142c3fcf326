package mock

import (
	"context"

	"github.com/khabaroff/heart-risk-dashboard/src/models"
	"github.com/khabaroff/heart-risk-dashboard/src/repositories"
)

// PatientRepository is a mock implementation of repositories.PatientRepository
type PatientRepository struct {
	CreateFunc  func(ctx context.Context, patient *models.Patient) error
	GetByIDFunc func(ctx context.Context, id int64) (*models.Patient, error)
	ListFunc    func(ctx context.Context) ([]models.PatientSummary, error)

	Calls map[string][]interface{}
}

// NewPatientRepository creates a new mock patient repository
func NewPatientRepository() *PatientRepository {
	return &PatientRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	m.Calls["Create"] = append(m.Calls["Create"], patient)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, patient)
	}
	return nil
}

func (m *PatientRepository) GetByID(ctx context.Context, id int64) (*models.Patient, error) {
	m.Calls["GetByID"] = append(m.Calls["GetByID"], id)
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repositories.ErrNotFound
}

func (m *PatientRepository) List(ctx context.Context) ([]models.PatientSummary, error) {
	m.Calls["List"] = append(m.Calls["List"], nil)
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

var _ repositories.PatientRepository = (*PatientRepository)(nil)
