package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/heart-risk-dashboard/src/reports"
	"github.com/khabaroff/heart-risk-dashboard/src/services"
	"github.com/khabaroff/heart-risk-dashboard/src/session"
)

// PredictHandler runs the inference pipeline for the selected patient
type PredictHandler struct {
	predictionService *services.PredictionService
	patientService    *services.PatientService
}

// NewPredictHandler creates a new predict handler
func NewPredictHandler(predictionService *services.PredictionService, patientService *services.PatientService) *PredictHandler {
	return &PredictHandler{
		predictionService: predictionService,
		patientService:    patientService,
	}
}

// PredictRequest is the predict form plus the patient it is for. A zero
// PatientID means the patient selected in the session.
type PredictRequest struct {
	PatientID int64 `json:"patient_id"`
	services.PredictForm
}

// PredictResponse is the stored prediction and where to fetch its report
type PredictResponse struct {
	*services.PredictionResult
	ReportURL      string `json:"report_url"`
	ReportFilename string `json:"report_filename"`
}

// requirePatient writes the informational gate response when the session
// has no registered patient
func requirePatient(c *gin.Context, sess session.Session) bool {
	if !sess.CanPredict() {
		c.JSON(http.StatusConflict, gin.H{"info": infoRegisterFirst})
		return false
	}
	return true
}

// HandleOptions returns the form tables, the patient selector and the
// prefilled age of the selected patient
func (ph *PredictHandler) HandleOptions(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok || !requirePatient(c, sess) {
		return
	}

	patients, err := ph.patientService.ListPatients(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list patients")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"options":             services.PredictFormOptions(),
		"patients":            patients,
		"selected_patient_id": sess.SelectedPatientID,
		"prefill_age":         sess.PrefillAge,
	})
}

// HandlePredict classifies the submitted form and appends it to the log
func (ph *PredictHandler) HandlePredict(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok || !requirePatient(c, sess) {
		return
	}

	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	patientID := req.PatientID
	if patientID == 0 {
		patientID = sess.SelectedPatientID
	}

	result, err := ph.predictionService.Predict(c.Request.Context(), patientID, req.PredictForm)
	if err != nil {
		respondError(c, err, "failed to run prediction")
		return
	}

	c.JSON(http.StatusOK, PredictResponse{
		PredictionResult: result,
		ReportURL:        fmt.Sprintf("/api/predictions/%d/report.pdf", result.RecordID),
		ReportFilename:   reports.Filename(result.PatientLabel),
	})
}
