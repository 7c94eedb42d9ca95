package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every *AppError unwraps to exactly one of these.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal server error")
)

// AppError carries a client-safe Message; Details and Err stay server side.
type AppError struct {
	Kind    error
	Message string
	Details string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%s: %v)", e.Kind.Error(), e.Message, e.Details, e.Err)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind.Error(), e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

func (e *AppError) Unwrap() error { return e.Kind }

func New(kind error, msg, details string, err error) *AppError {
	return &AppError{Kind: kind, Message: msg, Details: details, Err: err}
}

func NewConflict(msg, details string) *AppError {
	return New(ErrConflict, msg, details, nil)
}

func NewUnauthorized(msg string) *AppError {
	return New(ErrUnauthorized, msg, "", nil)
}

func NewNotFound(msg, details string) *AppError {
	return New(ErrNotFound, msg, details, nil)
}

// NewPersistence wraps a store failure. The message is always generic.
func NewPersistence(details string, err error) *AppError {
	return New(ErrInternal, "Server Error", details, err)
}

// Message returns the client-safe message of err, or a generic one.
func Message(err error) string {
	var ae *AppError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return "Server Error"
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
