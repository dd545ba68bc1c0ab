package domain

import "errors"

// Common domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInternalServer  = errors.New("internal server error")
	ErrDuplicateEntry  = errors.New("duplicate entry")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("token invalid")
)

// Store limit errors. The engine chunks its requests so these only surface
// when a caller bypasses chunking.
var (
	ErrQueryLimitExceeded  = errors.New("in-query value count exceeds store limit")
	ErrGetAllLimitExceeded = errors.New("multi-key get exceeds store limit")
	ErrWriteBatchTooLarge  = errors.New("write batch exceeds store limit")
)

// Record errors
var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrPrincipalNotFound    = errors.New("principal not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrCommonCodeNotFound   = errors.New("common code not found")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
)

// ValidationError carries a human readable reason for a rejected input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match validation failures.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
