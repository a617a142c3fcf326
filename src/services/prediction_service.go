package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khabaroff/heart-risk-dashboard/src/classifier"
	"github.com/khabaroff/heart-risk-dashboard/src/logging"
	"github.com/khabaroff/heart-risk-dashboard/src/models"
	"github.com/khabaroff/heart-risk-dashboard/src/reports"
	"github.com/khabaroff/heart-risk-dashboard/src/repositories"
)

// DefaultModelTimeout bounds a single classifier invocation
const DefaultModelTimeout = 5 * time.Second

// PredictionResult is the outcome of one inference
type PredictionResult struct {
	RecordID     int64                `json:"record_id"`
	PatientID    int64                `json:"patient_id"`
	PatientLabel string               `json:"patient_label"`
	Label        models.RiskLabel     `json:"label"`
	Confidence   float64              `json:"confidence"`
	Message      string               `json:"message"`
	Vector       models.FeatureVector `json:"vector"`
	CreatedAt    time.Time            `json:"timestamp"`
}

// PredictionService runs the inference pipeline and writes the prediction log
type PredictionService struct {
	patients    repositories.PatientRepository
	predictions repositories.PredictionRepository
	model       classifier.Classifier
	timeout     time.Duration
}

// NewPredictionService creates a new prediction service.
// A non-positive timeout falls back to DefaultModelTimeout.
func NewPredictionService(
	patients repositories.PatientRepository,
	predictions repositories.PredictionRepository,
	model classifier.Classifier,
	timeout time.Duration,
) *PredictionService {
	if timeout <= 0 {
		timeout = DefaultModelTimeout
	}
	return &PredictionService{
		patients:    patients,
		predictions: predictions,
		model:       model,
		timeout:     timeout,
	}
}

// InsightMessage formats the one-line result shown to the admin and stored
// with the record
func InsightMessage(label models.RiskLabel, confidence float64) string {
	return fmt.Sprintf("Prediction: **%s** (Confidence: %s)", label, reports.FormatPercent(confidence))
}

// Predict encodes the form, classifies it for the given patient and appends
// exactly one record to the prediction log. Nothing is written on failure.
func (ps *PredictionService) Predict(ctx context.Context, patientID int64, form PredictForm) (*PredictionResult, error) {
	logger := logging.NewLogger("prediction")

	vector, err := BuildFeatureVector(form)
	if err != nil {
		return nil, err
	}

	patient, err := ps.patients.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}

	label, confidence, err := ps.classify(ctx, vector)
	if err != nil {
		logger.Error().Err(err).Int64("patient_id", patientID).Msg("classification failed")
		return nil, err
	}

	params, err := vector.Serialize()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize features: %w", err)
	}

	record := &models.PredictionRecord{
		PatientID:      patient.ID,
		InputParams:    params,
		Prediction:     label,
		InsightMessage: InsightMessage(label, confidence),
		Confidence:     confidence,
		CreatedAt:      time.Now().UTC(),
	}

	if err := ps.predictions.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store prediction: %w", err)
	}

	logger.Info().
		Int64("patient_id", patient.ID).
		Int64("record_id", record.ID).
		Str("label", string(label)).
		Float64("confidence", confidence).
		Msg("prediction stored")

	return &PredictionResult{
		RecordID:     record.ID,
		PatientID:    patient.ID,
		PatientLabel: patient.Label(),
		Label:        label,
		Confidence:   confidence,
		Message:      record.InsightMessage,
		Vector:       vector,
		CreatedAt:    record.CreatedAt,
	}, nil
}

func (ps *PredictionService) classify(ctx context.Context, v models.FeatureVector) (models.RiskLabel, float64, error) {
	if ps.model == nil {
		return "", 0, fmt.Errorf("%w: %v", ErrClassifier, classifier.ErrNoModel)
	}

	ctx, cancel := context.WithTimeout(ctx, ps.timeout)
	defer cancel()

	class, err := ps.model.Predict(ctx, v)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrClassifier, err)
	}

	label, ok := models.RiskLabelFor(class)
	if !ok {
		return "", 0, fmt.Errorf("%w: %d", ErrUnexpectedLabel, class)
	}

	confidence, err := ps.model.PredictProbability(ctx, v)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrClassifier, err)
	}

	return label, confidence, nil
}

// GetPrediction retrieves one record of the prediction log
func (ps *PredictionService) GetPrediction(ctx context.Context, id int64) (*models.PredictionRecord, error) {
	record, err := ps.predictions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPredictionNotFound
		}
		return nil, fmt.Errorf("failed to load prediction: %w", err)
	}
	return record, nil
}
