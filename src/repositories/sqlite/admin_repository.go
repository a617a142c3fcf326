package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/khabaroff/heart-risk-dashboard/src/models"
)

// AdminRepository stores admin credentials in the admin table
type AdminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO admin (username, password_hash, created_at) VALUES (?, ?, ?)`,
		admin.Username, admin.PasswordHash, admin.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert admin: %w", translateError(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read admin id: %w", err)
	}
	admin.ID = id
	return nil
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	admin := &models.AdminUser{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM admin WHERE username = ?`,
		username,
	).Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return admin, nil
}

func (r *AdminRepository) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM admin WHERE username = ?)`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check admin: %w", err)
	}
	return exists, nil
}

func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admin`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}
