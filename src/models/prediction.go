package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FeatureCount is the length of every feature vector passed to the classifier
const FeatureCount = 13

// FeatureNames lists the vector positions in their fixed order
var FeatureNames = [FeatureCount]string{
	"age",
	"sex",
	"cp",
	"trestbps",
	"chol",
	"fbs",
	"restecg",
	"thalach",
	"exang",
	"oldpeak",
	"slope",
	"ca",
	"thal",
}

// FeatureVector is the ordered numeric input of one prediction
type FeatureVector [FeatureCount]float64

// Serialize encodes the vector the way it is stored in input_params: a
// single-row JSON matrix of floats, every value written with a decimal
// point, e.g. [[54.0, 1.0, 1.0, 130.0, 250.0, 0.0, 0.0, 160.0, 0.0, 1.2, 1.0, 0.0, 1.0]].
func (v FeatureVector) Serialize() (string, error) {
	var b strings.Builder
	b.WriteString("[[")
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return "", fmt.Errorf("failed to serialize feature vector: %s is not finite", FeatureNames[i])
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatFeature(x))
	}
	b.WriteString("]]")
	return b.String(), nil
}

// formatFeature writes the shortest representation of x, keeping a
// trailing ".0" on whole numbers so the value reads back as a float
func formatFeature(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// ParseFeatureVector decodes a stored vector. Both the single-row matrix
// form and a flat array are accepted.
func ParseFeatureVector(s string) (FeatureVector, error) {
	var v FeatureVector

	var matrix [][]float64
	if err := json.Unmarshal([]byte(s), &matrix); err == nil {
		if len(matrix) != 1 {
			return v, fmt.Errorf("expected 1 feature row, got %d", len(matrix))
		}
		return vectorFromSlice(matrix[0])
	}

	var flat []float64
	if err := json.Unmarshal([]byte(s), &flat); err != nil {
		return v, fmt.Errorf("failed to parse feature vector: %w", err)
	}
	return vectorFromSlice(flat)
}

func vectorFromSlice(values []float64) (FeatureVector, error) {
	var v FeatureVector
	if len(values) != FeatureCount {
		return v, fmt.Errorf("expected %d features, got %d", FeatureCount, len(values))
	}
	copy(v[:], values)
	return v, nil
}

// RiskLabel is the textual verdict stored with each prediction
type RiskLabel string

const (
	// RiskLow is produced for classifier output 1
	RiskLow RiskLabel = "Low risk"
	// RiskHigh is produced for classifier output 0
	RiskHigh RiskLabel = "High risk"
)

// RiskLabelFor maps a raw classifier label to its verdict.
// NOTE: 1 means "Low risk". The polarity follows the labels the model was
// trained with and must not be flipped here.
func RiskLabelFor(class int) (RiskLabel, bool) {
	switch class {
	case 1:
		return RiskLow, true
	case 0:
		return RiskHigh, true
	default:
		return "", false
	}
}

// PredictionRecord is one immutable row of the prediction log
type PredictionRecord struct {
	ID             int64     `json:"id"`
	PatientID      int64     `json:"patient_id"`
	InputParams    string    `json:"input_params"`
	Prediction     RiskLabel `json:"prediction"`
	InsightMessage string    `json:"ai_insight"`
	Confidence     float64   `json:"confidence"`
	CreatedAt      time.Time `json:"timestamp"`
}

// RiskCounts aggregates the prediction log by verdict
type RiskCounts struct {
	LowRisk  int `json:"low_risk"`
	HighRisk int `json:"high_risk"`
}

// Total returns the number of counted predictions
func (rc RiskCounts) Total() int {
	return rc.LowRisk + rc.HighRisk
}
