package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/khabaroff/heart-risk-dashboard/src/models"
	"github.com/khabaroff/heart-risk-dashboard/src/reports"
	"github.com/khabaroff/heart-risk-dashboard/src/repositories"
)

// ReportService aggregates the prediction log and renders reports
type ReportService struct {
	patients    repositories.PatientRepository
	predictions repositories.PredictionRepository
}

// NewReportService creates a new report service
func NewReportService(patients repositories.PatientRepository, predictions repositories.PredictionRepository) *ReportService {
	return &ReportService{patients: patients, predictions: predictions}
}

// AggregateCounts counts the prediction log by verdict. Labels other than
// the two known verdicts are not counted.
func (rs *ReportService) AggregateCounts(ctx context.Context) (models.RiskCounts, error) {
	byLabel, err := rs.predictions.CountByLabel(ctx)
	if err != nil {
		return models.RiskCounts{}, fmt.Errorf("failed to count predictions: %w", err)
	}
	return models.RiskCounts{
		LowRisk:  byLabel[models.RiskLow],
		HighRisk: byLabel[models.RiskHigh],
	}, nil
}

// RenderReport produces the single-page PDF summary
func (rs *ReportService) RenderReport(patientLabel string, label models.RiskLabel, confidence float64, reviewer string) ([]byte, error) {
	return reports.RenderPDF(reports.Summary{
		PatientLabel: patientLabel,
		Prediction:   string(label),
		Confidence:   confidence,
		Reviewer:     reviewer,
	})
}

// ReportFilename derives the download name from the patient label
func (rs *ReportService) ReportFilename(patientLabel string) string {
	return reports.Filename(patientLabel)
}

// PredictionReport renders the report for a stored prediction and returns it
// with its download filename
func (rs *ReportService) PredictionReport(ctx context.Context, recordID int64, reviewer string) (string, []byte, error) {
	record, err := rs.predictions.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrPredictionNotFound
		}
		return "", nil, fmt.Errorf("failed to load prediction: %w", err)
	}

	patient, err := rs.patients.GetByID(ctx, record.PatientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrPatientNotFound
		}
		return "", nil, fmt.Errorf("failed to load patient: %w", err)
	}

	label := patient.Label()
	data, err := rs.RenderReport(label, record.Prediction, record.Confidence, reviewer)
	if err != nil {
		return "", nil, fmt.Errorf("failed to render report: %w", err)
	}
	return rs.ReportFilename(label), data, nil
}

// RenderChart draws the risk distribution. It returns reports.ErrNoData when
// the log is empty.
func (rs *ReportService) RenderChart(ctx context.Context) ([]byte, error) {
	counts, err := rs.AggregateCounts(ctx)
	if err != nil {
		return nil, err
	}
	return reports.RenderChart(counts)
}
