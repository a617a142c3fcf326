package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/heart-risk-dashboard/src/services"
	"github.com/khabaroff/heart-risk-dashboard/src/session"
)

// PatientHandler handles the patient registry
type PatientHandler struct {
	patientService *services.PatientService
	sessions       *session.Manager
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientService *services.PatientService, sessions *session.Manager) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
		sessions:       sessions,
	}
}

// HandleRegisterPatient stores a patient and selects it in the session
func (ph *PatientHandler) HandleRegisterPatient(c *gin.Context) {
	sess, ok := mustSession(c)
	if !ok {
		return
	}

	var req services.PatientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return
	}

	patient, err := ph.patientService.RegisterPatient(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to register patient")
		return
	}

	updated, err := ph.sessions.Update(sess.ID, func(s *session.Session) {
		s.SelectPatient(patient)
	})
	if err != nil {
		respondError(c, err, "failed to update session")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"patient": patient,
		"label":   patient.Label(),
		"session": updated,
	})
}

// HandleListPatients returns the registry in registration order
func (ph *PatientHandler) HandleListPatients(c *gin.Context) {
	patients, err := ph.patientService.ListPatients(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list patients")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patients": patients,
		"total":    len(patients),
	})
}
