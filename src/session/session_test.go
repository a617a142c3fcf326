package session

import (
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/khabaroff/heart-risk-dashboard/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

func TestSession_Flow(t *testing.T) {
	store := NewStore(time.Hour)
	sess := store.Create("admin")

	assert.Equal(t, models.PageRegisterPatient, sess.NavPage)
	assert.False(t, sess.CanPredict())

	updated, err := store.Update(sess.ID, func(s *Session) {
		s.SelectPatient(&models.Patient{ID: 4, Name: "Alex Doe", Age: 54})
	})
	require.NoError(t, err)
	assert.True(t, updated.CanPredict())
	assert.Equal(t, int64(4), updated.SelectedPatientID)
	assert.Equal(t, 54, updated.PrefillAge)
	assert.Equal(t, models.PagePredict, updated.NavPage)

	updated, err = store.Update(sess.ID, func(s *Session) { s.StartNewPatient() })
	require.NoError(t, err)
	assert.False(t, updated.CanPredict())
}

func TestStore_ReturnsCopies(t *testing.T) {
	store := NewStore(time.Hour)
	sess := store.Create("admin")

	sess.Username = "mutated"
	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)
}

func TestStore_Expiry(t *testing.T) {
	store := NewStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	sess := store.Create("admin")
	_, err := store.Get(sess.ID)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Update(sess.ID, func(s *Session) {})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 1, store.DeleteExpired())
	assert.Equal(t, 0, store.Len())
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	store := NewStore(time.Hour)
	sess := store.Create("admin")

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, _ = store.Update(sess.ID, func(s *Session) {
				s.SelectPatient(&models.Patient{ID: id, Age: 30})
			})
			_, _ = store.Get(sess.ID)
		}(int64(i))
	}
	wg.Wait()

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.True(t, got.CanPredict())
}

func TestNewManager_SecretValidation(t *testing.T) {
	_, err := NewManager("", time.Hour)
	assert.Error(t, err)

	_, err = NewManager("short", time.Hour)
	assert.Error(t, err)

	m, err := NewManager(testSecret, 0)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, m.TTL())
}

func TestManager_StartResolveEnd(t *testing.T) {
	m, err := NewManager(testSecret, time.Hour)
	require.NoError(t, err)

	token, sess, err := m.Start("admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	resolved, err := m.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, resolved.ID)
	assert.Equal(t, "admin", resolved.Username)

	m.End(sess.ID)
	_, err = m.Resolve(token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_RejectsForeignTokens(t *testing.T) {
	m, err := NewManager(testSecret, time.Hour)
	require.NoError(t, err)
	other, err := NewManager("another-secret-that-is-32-characters-long", time.Hour)
	require.NoError(t, err)

	token, _, err := other.Start("admin")
	require.NoError(t, err)

	_, err = m.Resolve(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Resolve("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{SessionID: "x"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Resolve(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
