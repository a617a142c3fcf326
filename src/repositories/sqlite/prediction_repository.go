package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/khabaroff/heart-risk-dashboard/src/models"
)

// PredictionRepository appends to and reads from the predictions table
type PredictionRepository struct {
	db *sql.DB
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Create(ctx context.Context, record *models.PredictionRecord) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO predictions (user_id, input_params, prediction, ai_insight, confidence, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.PatientID, record.InputParams, string(record.Prediction),
		record.InsightMessage, record.Confidence, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", translateError(err))
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read prediction id: %w", err)
	}
	record.ID = id
	return nil
}

func (r *PredictionRepository) GetByID(ctx context.Context, id int64) (*models.PredictionRecord, error) {
	rec := &models.PredictionRecord{}
	var label string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, input_params, prediction, COALESCE(ai_insight, ''), confidence, timestamp
		 FROM predictions WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.PatientID, &rec.InputParams, &label, &rec.InsightMessage, &rec.Confidence, &rec.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	rec.Prediction = models.RiskLabel(label)
	return rec, nil
}

func (r *PredictionRepository) CountByLabel(ctx context.Context) (map[models.RiskLabel]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT prediction, COUNT(*) FROM predictions GROUP BY prediction`)
	if err != nil {
		return nil, fmt.Errorf("failed to count predictions: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.RiskLabel]int)
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("failed to scan prediction count: %w", err)
		}
		counts[models.RiskLabel(label)] = n
	}

	return counts, rows.Err()
}
