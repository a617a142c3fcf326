// Package postgres implements the repositories on top of a pgx connection pool.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khabaroff/heart-risk-dashboard/src/repositories"
)

const uniqueViolation = "23505"

// NewStore returns all repositories backed by pool
func NewStore(pool *pgxpool.Pool) *repositories.Store {
	return &repositories.Store{
		Admins:      NewAdminRepository(pool),
		Patients:    NewPatientRepository(pool),
		Predictions: NewPredictionRepository(pool),
	}
}

// translateError maps driver errors onto repository sentinels
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repositories.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repositories.ErrDuplicate
	}
	return err
}
