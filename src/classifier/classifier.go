// Package classifier wraps the pre-trained heart disease model behind a typed
// interface. Training and the model's internal representation live outside
// this service; adapters only load a frozen model and call it.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khabaroff/heart-risk-dashboard/src/models"
)

var (
	// ErrIncompatibleModel indicates the model does not accept the 13-feature vector
	ErrIncompatibleModel = errors.New("incompatible model")

	// ErrNoModel indicates neither a model file nor a model URL was configured
	ErrNoModel = errors.New("no model configured")
)

// Classifier is a frozen binary classifier
type Classifier interface {
	// Predict returns the class label (0 or 1) for v
	Predict(ctx context.Context, v models.FeatureVector) (int, error)
	// PredictProbability returns the probability of class 1 for v
	PredictProbability(ctx context.Context, v models.FeatureVector) (float64, error)
}

// Options selects and configures the model adapter
type Options struct {
	Path    string        // model file (yaml or json)
	URL     string        // model server base URL; wins over Path when set
	Timeout time.Duration // per-call timeout for the HTTP adapter
}

// Load returns the adapter described by opts. Any error means the pipeline is
// unusable and the caller should stop the process.
func Load(opts Options) (Classifier, error) {
	switch {
	case opts.URL != "":
		return NewHTTPModel(opts.URL, opts.Timeout), nil
	case opts.Path != "":
		m, err := LoadLinearModel(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load model %s: %w", opts.Path, err)
		}
		return m, nil
	default:
		return nil, ErrNoModel
	}
}
