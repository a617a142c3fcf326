package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for explicit error handling
// These errors allow callers to distinguish between different failure modes
// using errors.Is() instead of string matching

var (
	// ErrInvalidInput indicates a validation failure; the operation did not proceed
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyName indicates a patient was submitted without a name
	ErrEmptyName = fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)

	// ErrInvalidAge indicates an age outside the accepted bounds
	ErrInvalidAge = fmt.Errorf("%w: age must be between 1 and 120", ErrInvalidInput)

	// ErrInvalidGender indicates a gender outside the enumerated options
	ErrInvalidGender = fmt.Errorf("%w: gender must be Male, Female or Other", ErrInvalidInput)

	// ErrUsernameTaken indicates an admin with the same username exists
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials indicates authentication failed
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPatientNotFound indicates the referenced patient does not exist
	ErrPatientNotFound = errors.New("patient not found")

	// ErrPredictionNotFound indicates the referenced prediction does not exist
	ErrPredictionNotFound = errors.New("prediction not found")

	// ErrClassifier indicates the model could not be invoked
	ErrClassifier = errors.New("classifier failed")

	// ErrUnexpectedLabel indicates the model returned a label other than 0 or 1
	ErrUnexpectedLabel = errors.New("classifier returned an unexpected label")
)
