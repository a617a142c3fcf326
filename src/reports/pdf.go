// Package reports renders the downloadable prediction summary and the
// metrics chart.
package reports

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Summary is the content of a single-prediction report
type Summary struct {
	PatientLabel string
	Prediction   string
	Confidence   float64 // probability of the positive class, 0..1
	Reviewer     string
}

// Lines returns the four report lines in print order
func (s Summary) Lines() []string {
	return []string{
		"Patient Name: " + s.PatientLabel,
		"Prediction: " + s.Prediction,
		"Confidence: " + FormatPercent(s.Confidence),
		"Reviewed by Admin: " + s.Reviewer,
	}
}

// FormatPercent renders a probability as a whole percentage, e.g. 0.873 -> "87%"
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p*100)
}

// Filename derives the download name from the patient label: the first
// whitespace-separated token followed by _report.pdf.
func Filename(patientLabel string) string {
	fields := strings.Fields(patientLabel)
	if len(fields) == 0 {
		return "report.pdf"
	}
	return fields[0] + "_report.pdf"
}

// RenderPDF produces a one-page Letter document with the summary lines
// starting 50pt from the left and 750pt from the bottom edge.
func RenderPDF(s Summary) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetTitle("Heart Disease Risk Report", true)
	pdf.SetCompression(false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, pageHeight := pdf.GetPageSize()

	y := 750.0
	for _, line := range s.Lines() {
		pdf.Text(50, pageHeight-y, tr(line))
		y -= 20
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
