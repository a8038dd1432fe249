package apperrors

import "errors"

// Sentinel errors for the core services. Controllers map these onto HTTP
// status codes; services never leak store or transport errors directly.
var (
	// Resource errors
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("conflict")

	// Authentication errors
	ErrInvalidAccessKey = errors.New("invalid access key")
	ErrAccountBlocked   = errors.New("account is blocked")
	ErrDuplicateEmail   = errors.New("email already registered in this cohort")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenInvalid     = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrBadRequest = errors.New("bad request")

	// Persistence errors
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// CustomError wraps a sentinel error with a caller-facing message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a CustomError wrapping ErrNotFound.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewConflictError creates a CustomError wrapping ErrConflict.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a CustomError wrapping ErrPermissionDenied.
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a CustomError wrapping ErrBadRequest.
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewStorageError creates a CustomError wrapping ErrStorageUnavailable.
func NewStorageError(message string) error {
	return &CustomError{Err: ErrStorageUnavailable, Message: message}
}
