package reports

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/khabaroff/heart-risk-dashboard/src/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to chart
var ErrNoData = errors.New("no predictions made yet")

var (
	lowRiskColor  = drawing.Color{R: 46, G: 125, B: 50, A: 255}
	highRiskColor = drawing.Color{R: 198, G: 40, B: 40, A: 255}
)

// RenderChart draws the two-bar "Risk Predictions" chart as PNG
func RenderChart(counts models.RiskCounts) ([]byte, error) {
	if counts.Total() == 0 {
		return nil, ErrNoData
	}

	maxCount := counts.LowRisk
	if counts.HighRisk > maxCount {
		maxCount = counts.HighRisk
	}

	graph := chart.BarChart{
		Title:      "Risk Predictions",
		Width:      480,
		Height:     400,
		BarWidth:   120,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis: chart.YAxis{
			Name:  "Patient Count",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount + 1)},
		},
		Bars: []chart.Value{
			{
				Value: float64(counts.LowRisk),
				Label: fmt.Sprintf("%s (%d)", models.RiskLow, counts.LowRisk),
				Style: chart.Style{FillColor: lowRiskColor, StrokeColor: lowRiskColor},
			},
			{
				Value: float64(counts.HighRisk),
				Label: fmt.Sprintf("%s (%d)", models.RiskHigh, counts.HighRisk),
				Style: chart.Style{FillColor: highRiskColor, StrokeColor: highRiskColor},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}
