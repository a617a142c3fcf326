package mock

import (
	"context"

	"github.com/khabaroff/heart-risk-dashboard/src/models"
	"github.com/khabaroff/heart-risk-dashboard/src/repositories"
)

// PredictionRepository is a mock implementation of repositories.PredictionRepository
type PredictionRepository struct {
	CreateFunc       func(ctx context.Context, record *models.PredictionRecord) error
	GetByIDFunc      func(ctx context.Context, id int64) (*models.PredictionRecord, error)
	CountByLabelFunc func(ctx context.Context) (map[models.RiskLabel]int, error)

	Calls map[string][]interface{}
}

// NewPredictionRepository creates a new mock prediction repository
func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *PredictionRepository) Create(ctx context.Context, record *models.PredictionRecord) error {
	m.Calls["Create"] = append(m.Calls["Create"], record)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, record)
	}
	return nil
}

func (m *PredictionRepository) GetByID(ctx context.Context, id int64) (*models.PredictionRecord, error) {
	m.Calls["GetByID"] = append(m.Calls["GetByID"], id)
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repositories.ErrNotFound
}

func (m *PredictionRepository) CountByLabel(ctx context.Context) (map[models.RiskLabel]int, error) {
	m.Calls["CountByLabel"] = append(m.Calls["CountByLabel"], nil)
	if m.CountByLabelFunc != nil {
		return m.CountByLabelFunc(ctx)
	}
	return map[models.RiskLabel]int{}, nil
}

var _ repositories.PredictionRepository = (*PredictionRepository)(nil)
