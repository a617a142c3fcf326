package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/khabaroff/heart-risk-dashboard/src/database"
	"github.com/khabaroff/heart-risk-dashboard/src/models"
	"github.com/khabaroff/heart-risk-dashboard/src/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *repositories.Store {
	t.Helper()
	db := database.NewSQLiteTestDB(t)
	return NewStore(db.GetSQL())
}

func TestAdminRepository_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := &models.AdminUser{Username: "admin", PasswordHash: "hash-1", CreatedAt: time.Now()}
	require.NoError(t, store.Admins.Create(ctx, first))
	assert.NotZero(t, first.ID)

	second := &models.AdminUser{Username: "admin", PasswordHash: "hash-2", CreatedAt: time.Now()}
	err := store.Admins.Create(ctx, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	count, err := store.Admins.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := store.Admins.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hash-1", stored.PasswordHash)
}

func TestAdminRepository_Exists(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	exists, err := store.Admins.Exists(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Admins.Create(ctx, &models.AdminUser{Username: "nobody", PasswordHash: "x", CreatedAt: time.Now()}))

	exists, err = store.Admins.Exists(ctx, "nobody")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = store.Admins.GetByUsername(ctx, "somebody")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestPatientRepository_ListInInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	names := []string{"Zed Young", "Alex Doe", "Mia Park"}
	for i, name := range names {
		p := &models.Patient{Name: name, Age: 40 + i, Gender: models.GenderOther, CreatedAt: time.Now()}
		require.NoError(t, store.Patients.Create(ctx, p))
		assert.Equal(t, int64(i+1), p.ID)
	}

	list, err := store.Patients.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, p := range list {
		assert.Equal(t, names[i], p.Name)
		assert.Equal(t, 40+i, p.Age)
	}
	assert.Equal(t, "Alex Doe (ID:2)", list[1].Label)

	got, err := store.Patients.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Alex Doe", got.Name)

	_, err = store.Patients.GetByID(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestPredictionRepository_RoundTripAndCounts(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	counts, err := store.Predictions.CountByLabel(ctx)
	require.NoError(t, err)
	assert.Empty(t, counts)

	patient := &models.Patient{Name: "Alex Doe", Age: 54, Gender: models.GenderMale, CreatedAt: time.Now()}
	require.NoError(t, store.Patients.Create(ctx, patient))

	vector := models.FeatureVector{54, 1, 1, 130, 250, 0, 0, 160, 0, 1.2, 1, 0, 1}
	params, err := vector.Serialize()
	require.NoError(t, err)

	labels := []models.RiskLabel{models.RiskLow, models.RiskHigh, models.RiskLow}
	var firstID int64
	for _, label := range labels {
		rec := &models.PredictionRecord{
			PatientID:      patient.ID,
			InputParams:    params,
			Prediction:     label,
			InsightMessage: "msg",
			Confidence:     0.73,
			CreatedAt:      time.Now().UTC(),
		}
		require.NoError(t, store.Predictions.Create(ctx, rec))
		if firstID == 0 {
			firstID = rec.ID
		}
	}

	rec, err := store.Predictions.GetByID(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, patient.ID, rec.PatientID)
	assert.Equal(t, models.RiskLow, rec.Prediction)
	assert.InDelta(t, 0.73, rec.Confidence, 1e-12)

	decoded, err := models.ParseFeatureVector(rec.InputParams)
	require.NoError(t, err)
	assert.Equal(t, vector, decoded)

	counts, err = store.Predictions.CountByLabel(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[models.RiskLow])
	assert.Equal(t, 1, counts[models.RiskHigh])

	_, err = store.Predictions.GetByID(ctx, 404)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
