package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/khabaroff/heart-risk-dashboard/src/models"
)

// HTTPModel calls a model server that exposes /predict and /predict_proba
type HTTPModel struct {
	baseURL string
	client  *http.Client
}

type instancesRequest struct {
	Instances [][]float64 `json:"instances"`
}

type predictResponse struct {
	Predictions []int `json:"predictions"`
}

type probaResponse struct {
	Probabilities [][]float64 `json:"probabilities"`
}

// NewHTTPModel creates a client for the model server at baseURL
func NewHTTPModel(baseURL string, timeout time.Duration) *HTTPModel {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPModel{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Predict asks the server for the class label
func (m *HTTPModel) Predict(ctx context.Context, v models.FeatureVector) (int, error) {
	var resp predictResponse
	if err := m.post(ctx, "/predict", v, &resp); err != nil {
		return 0, err
	}
	if len(resp.Predictions) != 1 {
		return 0, fmt.Errorf("model server returned %d predictions, expected 1", len(resp.Predictions))
	}
	return resp.Predictions[0], nil
}

// PredictProbability asks the server for class probabilities and returns class 1
func (m *HTTPModel) PredictProbability(ctx context.Context, v models.FeatureVector) (float64, error) {
	var resp probaResponse
	if err := m.post(ctx, "/predict_proba", v, &resp); err != nil {
		return 0, err
	}
	if len(resp.Probabilities) != 1 || len(resp.Probabilities[0]) != 2 {
		return 0, fmt.Errorf("%w: expected one row of two class probabilities", ErrIncompatibleModel)
	}
	return resp.Probabilities[0][1], nil
}

func (m *HTTPModel) post(ctx context.Context, path string, v models.FeatureVector, out interface{}) error {
	body, err := json.Marshal(instancesRequest{Instances: [][]float64{v[:]}})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("model server request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model server returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode model response: %w", err)
	}
	return nil
}
