// Package session tracks per-login dashboard state: which patient is
// selected and which page the admin is on.
package session

import (
	"time"

	"github.com/khabaroff/heart-risk-dashboard/src/models"
)

// Session is the state of one logged-in admin
type Session struct {
	ID                string         `json:"-"`
	Username          string         `json:"username"`
	PatientRegistered bool           `json:"patient_registered"`
	SelectedPatientID int64          `json:"selected_patient_id,omitempty"`
	PrefillAge        int            `json:"prefill_age,omitempty"`
	NavPage           models.NavPage `json:"nav_page"`
	CreatedAt         time.Time      `json:"created_at"`
	ExpiresAt         time.Time      `json:"expires_at"`
}

func newSession(id, username string, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        id,
		Username:  username,
		NavPage:   models.PageRegisterPatient,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// SelectPatient makes p the working patient and moves to the predict page
func (s *Session) SelectPatient(p *models.Patient) {
	s.SelectedPatientID = p.ID
	s.PrefillAge = p.Age
	s.PatientRegistered = true
	s.NavPage = models.PagePredict
}

// StartNewPatient gates the predict page until another patient is registered
func (s *Session) StartNewPatient() {
	s.PatientRegistered = false
}

// CanPredict reports whether the predict page is unlocked
func (s *Session) CanPredict() bool {
	return s.PatientRegistered && s.SelectedPatientID != 0
}

func (s *Session) expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
