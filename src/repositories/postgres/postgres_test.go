package postgres

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

func TestAdminRepository_Duplicate(t *testing.T) {
	database.WithTestDB(t, func(tdb *database.TestDB) {
		ctx := context.Background()
		store := NewStore(tdb.Pool)

		require.NoError(t, store.Admins.Create(ctx, &models.AdminUser{Username: "admin", PasswordHash: "h", CreatedAt: time.Now()}))
		err := store.Admins.Create(ctx, &models.AdminUser{Username: "admin", PasswordHash: "h2", CreatedAt: time.Now()})
		assert.ErrorIs(t, err, repositories.ErrDuplicate)

		count, err := store.Admins.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestPredictionRepository_Counts(t *testing.T) {
	database.WithTestDB(t, func(tdb *database.TestDB) {
		ctx := context.Background()
		store := NewStore(tdb.Pool)

		patient := &models.Patient{Name: "Alex Doe", Age: 54, Gender: models.GenderMale, CreatedAt: time.Now()}
		require.NoError(t, store.Patients.Create(ctx, patient))

		vector := models.FeatureVector{54, 1, 1, 130, 250, 0, 0, 160, 0, 1.2, 1, 0, 1}
		params, err := vector.Serialize()
		require.NoError(t, err)

		for _, label := range []models.RiskLabel{models.RiskHigh, models.RiskHigh} {
			rec := &models.PredictionRecord{
				PatientID:   patient.ID,
				InputParams: params,
				Prediction:  label,
				CreatedAt:   time.Now(),
			}
			require.NoError(t, store.Predictions.Create(ctx, rec))
		}

		counts, err := store.Predictions.CountByLabel(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, counts[models.RiskLow])
		assert.Equal(t, 2, counts[models.RiskHigh])

		list, err := store.Patients.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Alex Doe (ID:1)", list[0].Label)
	})
}
