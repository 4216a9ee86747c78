package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrForbidden           = errors.New("forbidden")
	ErrBadRequest          = errors.New("bad request")
	ErrInvalidMediaType    = errors.New("invalid media type")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)

// AppError carries a user-facing message and wraps one of the sentinel kinds
// above so callers can still match it with errors.Is.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, ErrNotFound)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, ErrForbidden)
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, ErrBadRequest)
}

func InvalidMediaType(message string) *AppError {
	return New(http.StatusBadRequest, message, ErrInvalidMediaType)
}

// ConstraintViolation keeps the backend error reachable through Unwrap chains
// for logging while exposing only message to clients.
func ConstraintViolation(message string, cause error) *AppError {
	return New(http.StatusBadRequest, message, &kindError{kind: ErrConstraintViolation, cause: cause})
}

func StorageUnavailable(cause error) *AppError {
	return StorageFailure("database error", cause)
}

// StorageFailure is StorageUnavailable with a message naming the failed store.
func StorageFailure(message string, cause error) *AppError {
	return New(http.StatusInternalServerError, message, &kindError{kind: ErrStorageUnavailable, cause: cause})
}

type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	if e.cause == nil {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *kindError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

// Cause returns the full error chain text, including the wrapped backend error.
func Cause(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Err != nil {
		return appErr.Message + ": " + appErr.Err.Error()
	}
	return err.Error()
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrInvalidMediaType) || errors.Is(err, ErrConstraintViolation) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrStorageUnavailable) {
		return http.StatusInternalServerError
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	// Default to internal server error
	return http.StatusInternalServerError
}
