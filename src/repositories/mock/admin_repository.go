package mock

import (
	"context"

	"github.com/khabaroff/heart-risk-dashboard/src/models"
	"github.com/khabaroff/heart-risk-dashboard/src/repositories"
)

// AdminRepository is a mock implementation of repositories.AdminRepository
type AdminRepository struct {
	// Function stubs that can be overridden in tests
	CreateFunc        func(ctx context.Context, admin *models.AdminUser) error
	GetByUsernameFunc func(ctx context.Context, username string) (*models.AdminUser, error)
	ExistsFunc        func(ctx context.Context, username string) (bool, error)
	CountFunc         func(ctx context.Context) (int, error)

	// Call tracking
	Calls map[string][]interface{}
}

// NewAdminRepository creates a new mock admin repository
func NewAdminRepository() *AdminRepository {
	return &AdminRepository{
		Calls: make(map[string][]interface{}),
	}
}

func (m *AdminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	m.Calls["Create"] = append(m.Calls["Create"], admin)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, admin)
	}
	return nil
}

func (m *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	m.Calls["GetByUsername"] = append(m.Calls["GetByUsername"], username)
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, repositories.ErrNotFound
}

func (m *AdminRepository) Exists(ctx context.Context, username string) (bool, error) {
	m.Calls["Exists"] = append(m.Calls["Exists"], username)
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, username)
	}
	return false, nil
}

func (m *AdminRepository) Count(ctx context.Context) (int, error) {
	m.Calls["Count"] = append(m.Calls["Count"], nil)
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// Ensure AdminRepository implements the interface
var _ repositories.AdminRepository = (*AdminRepository)(nil)
