package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors. MessageKey, when set, selects
// a localized user-facing message from the i18n catalog; Message is the
// untranslated fallback.
type DomainError struct {
	Code       string
	MessageKey string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, messageKey, message string, status int) *DomainError {
	return &DomainError{Code: code, MessageKey: messageKey, Message: message, HTTPStatus: status}
}

func NewValidation(messageKey, message string) error {
	return NewDomainError("VALIDATION_FAILED", messageKey, message, http.StatusBadRequest)
}

func NewNotFound(messageKey, resource string) error {
	return NewDomainError("NOT_FOUND", messageKey, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewForbidden(messageKey, message string) error {
	return NewDomainError("FORBIDDEN", messageKey, message, http.StatusForbidden)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", "", message, http.StatusUnauthorized)
}

// NewInvalidCredentials is the single failure returned for any login error so
// callers cannot probe which field was wrong.
func NewInvalidCredentials(messageKey, message string) error {
	return NewDomainError("INVALID_CREDENTIALS", messageKey, message, http.StatusUnauthorized)
}

func NewRateLimited(messageKey, message string) error {
	return NewDomainError("RATE_LIMITED", messageKey, message, http.StatusTooManyRequests)
}

func NewConflict(messageKey, message string) error {
	return NewDomainError("CONFLICT", messageKey, message, http.StatusConflict)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		MessageKey: "common.operation_failed",
		Message:    "operation failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Missing rows from the
// persistence layer map to NOT_FOUND; anything else unknown is internal.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("common.not_found", "resource").(*DomainError); ok {
			return de
		}
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "operation failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
