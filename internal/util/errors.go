package util

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateName      = errors.New("duplicate name")
)

// AppError carries a user-facing message for one of the error kinds above.
type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

func NewValidationError(message string) error {
	return &AppError{Kind: ErrValidation, Message: message}
}

func NewNotFoundError(message string) error {
	return &AppError{Kind: ErrNotFound, Message: message}
}

func NewForbiddenError(message string) error {
	return &AppError{Kind: ErrForbidden, Message: message}
}

// Message returns the user-facing text of err, or fallback when err is not an AppError.
func Message(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// IsHandled reports whether err is one of the kinds recovered at the HTTP boundary.
func IsHandled(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrDuplicateName)
}
