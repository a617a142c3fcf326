package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/khabaroff/heart-risk-dashboard/src/models"
)

// PatientRepository stores patients in the users table
type PatientRepository struct {
	db *sql.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *sql.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, age, gender, notes, created_at) VALUES (?, ?, ?, ?, ?)`,
		patient.Name, patient.Age, patient.Gender, patient.Notes, patient.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert patient: %w", translateError(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read patient id: %w", err)
	}
	patient.ID = id
	return nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id int64) (*models.Patient, error) {
	p := &models.Patient{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(age, 0), COALESCE(gender, ''), COALESCE(notes, ''), created_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Notes, &p.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

func (r *PatientRepository) List(ctx context.Context) ([]models.PatientSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, COALESCE(age, 0) FROM users ORDER BY id`)
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
