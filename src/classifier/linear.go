package classifier

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/khabaroff/heart-risk-dashboard/src/models"
	"gopkg.in/yaml.v3"
)

// KindLogisticRegression is the only model kind LinearModel understands
const KindLogisticRegression = "logistic_regression"

// modelFile is the on-disk layout of an exported linear model. JSON files
// parse as well since YAML is a superset.
type modelFile struct {
	Kind         string    `yaml:"kind"`
	Version      string    `yaml:"version"`
	Features     []string  `yaml:"features"`
	Coefficients []float64 `yaml:"coefficients"`
	Intercept    float64   `yaml:"intercept"`
	Scaler       *struct {
		Mean  []float64 `yaml:"mean"`
		Scale []float64 `yaml:"scale"`
	} `yaml:"scaler"`
}

// LinearModel is a logistic regression exported with its optional
// standard scaler
type LinearModel struct {
	Version      string
	coefficients models.FeatureVector
	intercept    float64
	mean         models.FeatureVector
	scale        models.FeatureVector
}

// LoadLinearModel reads and validates a model file
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		return nil, err
	}
	return ParseLinearModel(data)
}

// ParseLinearModel validates an exported model against the feature order
func ParseLinearModel(data []byte) (*LinearModel, error) {
	var f modelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatibleModel, err)
	}

	if f.Kind != KindLogisticRegression {
		return nil, fmt.Errorf("%w: unsupported kind %q", ErrIncompatibleModel, f.Kind)
	}
	if len(f.Features) != models.FeatureCount {
		return nil, fmt.Errorf("%w: expected %d features, got %d", ErrIncompatibleModel, models.FeatureCount, len(f.Features))
	}
	for i, name := range f.Features {
		if name != models.FeatureNames[i] {
			return nil, fmt.Errorf("%w: feature %d is %q, expected %q", ErrIncompatibleModel, i, name, models.FeatureNames[i])
		}
	}
	if len(f.Coefficients) != models.FeatureCount {
		return nil, fmt.Errorf("%w: expected %d coefficients, got %d", ErrIncompatibleModel, models.FeatureCount, len(f.Coefficients))
	}

	m := &LinearModel{Version: f.Version, intercept: f.Intercept}
	copy(m.coefficients[:], f.Coefficients)

	for i := range m.scale {
		m.scale[i] = 1
	}
	if f.Scaler != nil {
		if len(f.Scaler.Mean) != models.FeatureCount || len(f.Scaler.Scale) != models.FeatureCount {
			return nil, fmt.Errorf("%w: scaler must have %d means and scales", ErrIncompatibleModel, models.FeatureCount)
		}
		copy(m.mean[:], f.Scaler.Mean)
		for i, s := range f.Scaler.Scale {
			if s == 0 {
				return nil, fmt.Errorf("%w: zero scale for %s", ErrIncompatibleModel, models.FeatureNames[i])
			}
			m.scale[i] = s
		}
	}

	return m, nil
}

// decision returns the signed distance from the separating hyperplane
func (m *LinearModel) decision(v models.FeatureVector) float64 {
	z := m.intercept
	for i, x := range v {
		z += m.coefficients[i] * (x - m.mean[i]) / m.scale[i]
	}
	return z
}

// Predict returns 1 when the decision function is positive
func (m *LinearModel) Predict(ctx context.Context, v models.FeatureVector) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if m.decision(v) > 0 {
		return 1, nil
	}
	return 0, nil
}

// PredictProbability returns the logistic of the decision function
func (m *LinearModel) PredictProbability(ctx context.Context, v models.FeatureVector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return 1 / (1 + math.Exp(-m.decision(v))), nil
}
