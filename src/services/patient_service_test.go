package services

import (
	"context"
	"errors"
	"testing"

	"github.com/khabaroff/heart-risk-dashboard/src/models"
	"github.com/khabaroff/heart-risk-dashboard/src/repositories"
	"github.com/khabaroff/heart-risk-dashboard/src/repositories/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientService_RegisterPatient(t *testing.T) {
	ctx := context.Background()

	t.Run("stores valid patient", func(t *testing.T) {
		repo := mock.NewPatientRepository()
		repo.CreateFunc = func(ctx context.Context, p *models.Patient) error {
			p.ID = 7
			return nil
		}
		service := NewPatientService(repo)

		patient, err := service.RegisterPatient(ctx, PatientInput{Name: "Alex Doe", Age: 54, Gender: models.GenderMale})
		require.NoError(t, err)
		assert.Equal(t, int64(7), patient.ID)
		assert.Equal(t, "Alex Doe (ID:7)", patient.Label())
		assert.Len(t, repo.Calls["Create"], 1)
	})

	cases := []struct {
		name  string
		input PatientInput
		want  error
	}{
		{"whitespace name", PatientInput{Name: "   ", Age: 40, Gender: models.GenderFemale}, ErrEmptyName},
		{"empty name", PatientInput{Name: "", Age: 40, Gender: models.GenderFemale}, ErrEmptyName},
		{"age zero", PatientInput{Name: "Jo", Age: 0, Gender: models.GenderFemale}, ErrInvalidAge},
		{"age too high", PatientInput{Name: "Jo", Age: 121, Gender: models.GenderFemale}, ErrInvalidAge},
		{"unknown gender", PatientInput{Name: "Jo", Age: 40, Gender: "Unknown"}, ErrInvalidGender},
	}
	for _, tc := range cases {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			repo := mock.NewPatientRepository()
			service := NewPatientService(repo)

			_, err := service.RegisterPatient(ctx, tc.input)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.Calls["Create"])
		})
	}

	t.Run("accepts age bounds", func(t *testing.T) {
		service := NewPatientService(mock.NewPatientRepository())
		for _, age := range []int{models.MinAge, models.MaxAge} {
			_, err := service.RegisterPatient(ctx, PatientInput{Name: "Edge", Age: age, Gender: models.GenderOther})
			assert.NoError(t, err)
		}
	})
}

func TestPatientService_ListPatients(t *testing.T) {
	ctx := context.Background()

	t.Run("returns empty slice for empty registry", func(t *testing.T) {
		service := NewPatientService(mock.NewPatientRepository())

		patients, err := service.ListPatients(ctx)
		require.NoError(t, err)
		assert.NotNil(t, patients)
		assert.Empty(t, patients)
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		repo := mock.NewPatientRepository()
		repo.ListFunc = func(ctx context.Context) ([]models.PatientSummary, error) {
			return nil, errors.New("database error")
		}
		service := NewPatientService(repo)

		_, err := service.ListPatients(ctx)
		assert.Error(t, err)
	})
}

func TestPatientService_GetPatient(t *testing.T) {
	service := NewPatientService(mock.NewPatientRepository())

	_, err := service.GetPatient(context.Background(), 42)
	assert.ErrorIs(t, err, ErrPatientNotFound)
	assert.False(t, errors.Is(err, repositories.ErrNotFound))
}

func TestPatientService_NotesEncryption(t *testing.T) {
	ctx := context.Background()
	nc, err := NewNotesCipher(validHexKey())
	require.NoError(t, err)

	var stored models.Patient
	repo := mock.NewPatientRepository()
	repo.CreateFunc = func(ctx context.Context, p *models.Patient) error {
		p.ID = 1
		stored = *p
		return nil
	}
	repo.GetByIDFunc = func(ctx context.Context, id int64) (*models.Patient, error) {
		copied := stored
		return &copied, nil
	}

	service := NewPatientService(repo)
	service.SetNotesCipher(nc)

	patient, err := service.RegisterPatient(ctx, PatientInput{Name: "Alex Doe", Age: 54, Gender: models.GenderMale, Notes: "smoker"})
	require.NoError(t, err)
	assert.Equal(t, "smoker", patient.Notes)
	assert.NotContains(t, stored.Notes, "smoker")

	loaded, err := service.GetPatient(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "smoker", loaded.Notes)
}
