package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/khabaroff/heart-risk-dashboard/src/models"
	"github.com/khabaroff/heart-risk-dashboard/src/repositories"
)

// PatientInput is the registration form
type PatientInput struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
	Notes  string `json:"notes"`
}

// PatientService manages the patient registry
type PatientService struct {
	repo  repositories.PatientRepository
	notes *NotesCipher
}

// NewPatientService creates a new patient service
func NewPatientService(repo repositories.PatientRepository) *PatientService {
	return &PatientService{repo: repo}
}

// SetNotesCipher enables encryption of patient notes at rest
func (ps *PatientService) SetNotesCipher(nc *NotesCipher) {
	ps.notes = nc
}

// Validate checks the registration form without touching storage
func (in PatientInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	if in.Age < models.MinAge || in.Age > models.MaxAge {
		return ErrInvalidAge
	}
	for _, g := range models.Genders {
		if in.Gender == g {
			return nil
		}
	}
	return ErrInvalidGender
}

// RegisterPatient validates and stores a new patient. Nothing is written
// when validation fails.
func (ps *PatientService) RegisterPatient(ctx context.Context, in PatientInput) (*models.Patient, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	sealed, err := ps.notes.Seal(in.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to seal patient notes: %w", err)
	}

	patient := &models.Patient{
		Name:      strings.TrimSpace(in.Name),
		Age:       in.Age,
		Gender:    in.Gender,
		Notes:     sealed,
		CreatedAt: time.Now().UTC(),
	}

	if err := ps.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to register patient: %w", err)
	}

	patient.Notes = in.Notes
	return patient, nil
}

// ListPatients returns all patients in registration order
func (ps *PatientService) ListPatients(ctx context.Context) ([]models.PatientSummary, error) {
	patients, err := ps.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if patients == nil {
		patients = []models.PatientSummary{}
	}
	return patients, nil
}

// GetPatient retrieves a patient by ID
func (ps *PatientService) GetPatient(ctx context.Context, id int64) (*models.Patient, error) {
	patient, err := ps.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}

	if patient.Notes, err = ps.notes.Open(patient.Notes); err != nil {
		return nil, err
	}
	return patient, nil
}
