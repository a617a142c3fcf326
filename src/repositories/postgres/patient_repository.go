package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khabaroff/heart-risk-dashboard/src/models"
)

// PatientRepository stores patients in the users table
type PatientRepository struct {
	pool *pgxpool.Pool
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(pool *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{pool: pool}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, age, gender, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		patient.Name, patient.Age, patient.Gender, patient.Notes, patient.CreatedAt,
	).Scan(&patient.ID)
	if err != nil {
		return fmt.Errorf("failed to insert patient: %w", translateError(err))
	}
	return nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id int64) (*models.Patient, error) {
	p := &models.Patient{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, COALESCE(age, 0), COALESCE(gender, ''), COALESCE(notes, ''), created_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Notes, &p.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

func (r *PatientRepository) List(ctx context.Context) ([]models.PatientSummary, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, COALESCE(age, 0) FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	var patients []models.PatientSummary
	for rows.Next() {
		var p models.PatientSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Age); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		p.Label = models.DisplayLabel(p.ID, p.Name)
		patients = append(patients, p)
	}

	return patients, rows.Err()
}
