package errs

import (
	"errors"
)

var (
	ErrNotFound = errors.New("not found")

	// Authorization failure messages are part of the API contract and are
	// returned to clients verbatim.
	ErrNotAuthenticated = errors.New("Authentication credentials were not provided.")
	ErrPermissionDenied = errors.New("You do not have permission to perform this action.")

	ErrUserExists         = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

// ValidationError is a per-field input rejection rendered as a 400 with a
// field-keyed body.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Response() map[string][]string {
	return map[string][]string{e.Field: {e.Message}}
}
