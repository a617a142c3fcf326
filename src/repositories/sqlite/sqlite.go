// Package sqlite implements the repositories on top of database/sql and go-sqlite3.
package sqlite

import (
	"database/sql"
	"errors"

	"github.com/khabaroff/heart-risk-dashboard/src/repositories"
	"github.com/mattn/go-sqlite3"
)

// NewStore returns all repositories backed by db
func NewStore(db *sql.DB) *repositories.Store {
	return &repositories.Store{
		Admins:      NewAdminRepository(db),
		Patients:    NewPatientRepository(db),
		Predictions: NewPredictionRepository(db),
	}
}

// translateError maps driver errors onto repository sentinels
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repositories.ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return repositories.ErrDuplicate
	}
	return err
}
