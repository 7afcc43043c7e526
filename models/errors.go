package models

import (
	"errors"
	"net/http"
)

// ErrorKind classifies errors crossing the service boundary so controllers
// can pick a status code without inspecting message text.
type ErrorKind int

const (
	ErrKindValidation ErrorKind = iota
	ErrKindAuth
	ErrKindNotFound
	ErrKindStorage
)

// AppError is an error with a classification. The message is safe to return
// to the client; the wrapped cause is not and stays in the logs.
type AppError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// HTTPStatus maps the error kind to a response status code.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case ErrKindValidation:
		return http.StatusBadRequest
	case ErrKindAuth:
		return http.StatusUnauthorized
	case ErrKindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates an error for a rejected submission.
func NewValidationError(message string) *AppError {
	return &AppError{Kind: ErrKindValidation, Message: message}
}

// NewAuthError creates an error for an unresolvable caller identity.
func NewAuthError(message string) *AppError {
	return &AppError{Kind: ErrKindAuth, Message: message}
}

// NewNotFoundError creates an error for a missing resource.
func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: ErrKindNotFound, Message: message}
}

// NewStorageError wraps a transaction or query failure. The cause is kept
// for logging but the client only ever sees the message.
func NewStorageError(message string, cause error) *AppError {
	return &AppError{Kind: ErrKindStorage, Message: message, cause: cause}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// ClientMessage returns the message safe to show the caller. Unclassified
// errors collapse to a generic message so internals never leak.
func ClientMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

// StatusCode returns the HTTP status for any error.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}
