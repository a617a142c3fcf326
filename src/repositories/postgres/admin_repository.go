package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khabaroff/heart-risk-dashboard/src/models"
)

// AdminRepository stores admin credentials in the admin table
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO admin (username, password_hash, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		admin.Username, admin.PasswordHash, admin.CreatedAt,
	).Scan(&admin.ID)
	if err != nil {
		return fmt.Errorf("failed to insert admin: %w", translateError(err))
	}
	return nil
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	admin := &models.AdminUser{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM admin WHERE username = $1`,
		username,
	).Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return admin, nil
}

func (r *AdminRepository) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM admin WHERE username = $1)`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check admin: %w", err)
	}
	return exists, nil
}

func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM admin`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}
