package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khabaroff/heart-risk-dashboard/src/models"
)

// PredictionRepository appends to and reads from the predictions table
type PredictionRepository struct {
	pool *pgxpool.Pool
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(pool *pgxpool.Pool) *PredictionRepository {
	return &PredictionRepository{pool: pool}
}

func (r *PredictionRepository) Create(ctx context.Context, record *models.PredictionRecord) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO predictions (user_id, input_params, prediction, ai_insight, confidence, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		record.PatientID, record.InputParams, string(record.Prediction),
		record.InsightMessage, record.Confidence, record.CreatedAt,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", translateError(err))
	}
	return nil
}

func (r *PredictionRepository) GetByID(ctx context.Context, id int64) (*models.PredictionRecord, error) {
	rec := &models.PredictionRecord{}
	var label string
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, input_params, prediction, COALESCE(ai_insight, ''), confidence, timestamp
		 FROM predictions WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.PatientID, &rec.InputParams, &label, &rec.InsightMessage, &rec.Confidence, &rec.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	rec.Prediction = models.RiskLabel(label)
	return rec, nil
}

func (r *PredictionRepository) CountByLabel(ctx context.Context) (map[models.RiskLabel]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT prediction, COUNT(*) FROM predictions GROUP BY prediction`)
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
