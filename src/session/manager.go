package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a session token fails verification
var ErrInvalidToken = errors.New("invalid session token")

// MinSecretLength is the shortest accepted signing secret
const MinSecretLength = 32

const issuer = "heart-risk-dashboard"

// Claims is the JWT payload carried in the session cookie
type Claims struct {
	SessionID string `json:"sid"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

// Manager issues session tokens and resolves them against the store
type Manager struct {
	store  *Store
	secret []byte
	ttl    time.Duration
}

// NewManager creates a manager signing with secret
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters long", MinSecretLength)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		store:  NewStore(ttl),
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// Store exposes the underlying session store
func (m *Manager) Store() *Store {
	return m.store
}

// TTL returns the session lifetime
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Start creates a session for username and returns its signed token
func (m *Manager) Start(username string) (string, Session, error) {
	sess := m.store.Create(username)

	claims := Claims{
		SessionID: sess.ID,
		Username:  username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
			Issuer:    issuer,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		m.store.Delete(sess.ID)
		return "", Session{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, sess, nil
}

// Resolve verifies token and returns the live session it names
func (m *Manager) Resolve(token string) (Session, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil || !parsed.Valid {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sess, err := m.store.Get(claims.SessionID)
	if err != nil {
		return Session{}, err
	}
	if sess.Username != claims.Username {
		return Session{}, ErrInvalidToken
	}
	return sess, nil
}

// Update mutates the session with id
func (m *Manager) Update(id string, fn func(*Session)) (Session, error) {
	return m.store.Update(id, fn)
}

// End removes the session with id
func (m *Manager) End(id string) {
	m.store.Delete(id)
}
