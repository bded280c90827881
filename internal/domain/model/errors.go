package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession indicates the caller holds no usable credential.
	ErrNoSession = errors.New("no session")

	// ErrInvalidCredentials is returned for every failed login, whatever the cause.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// StatusUnprocessableEntity is the backend's validation-failure status.
const StatusUnprocessableEntity = 422

// APIError is a non-2xx response from the hotel backend.
type APIError struct {
	Status  int
	Message string
	// Fields maps form field names to validation messages (422 only).
	Fields map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

// IsValidation reports whether the error carries per-field validation messages.
func (e *APIError) IsValidation() bool {
	return e.Status == StatusUnprocessableEntity
}
