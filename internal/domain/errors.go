package domain

import (
	"errors"
	"fmt"
)

// Domain Const errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownKind       = errors.New("unknown message kind")
	ErrTemplateNotFound  = errors.New("template not found")
	ErrNotConfigured     = errors.New("transport not configured")
	ErrQueueUnavailable  = errors.New("notification queue unavailable")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (e ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e.Errors[0].Error())
}

func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// TransportError describes a failed hand-off to an outbound transport.
// StatusCode is zero when no HTTP response was received.
type TransportError struct {
	Method     DeliveryMethod
	StatusCode int
	Message    string
}

func (e TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s transport error: %s", e.Method, e.Message)
	}
	return fmt.Sprintf("%s transport error (status %d): %s", e.Method, e.StatusCode, e.Message)
}

func NewTransportError(method DeliveryMethod, statusCode int, message string) TransportError {
	return TransportError{
		Method:     method,
		StatusCode: statusCode,
		Message:    message,
	}
}
