// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized wraps server rejections of the stored credential
	ErrUnauthorized = errors.New("session rejected by server")

	// ErrLoginRequired is returned by the route guard when no token is stored
	ErrLoginRequired = errors.New("login required")

	// ErrCancelled is returned when the user declines a confirmation
	ErrCancelled = errors.New("operation cancelled")
)

// APIError is a failed call to the REST API
type APIError struct {
	Status   int    // 0 when the request never got a response
	Message  string // server-provided message, if any
	Fallback string // generic message used when the server gave none
	Err      error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Fallback != "" {
		return e.Fallback
	}
	if e.Status > 0 {
		return fmt.Sprintf("request failed: %s", http.StatusText(e.Status))
	}
	if e.Err != nil {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return "request failed"
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// ValidationError rejects an input before it is sent
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func required(field string) error {
	return &ValidationError{Field: field, Message: field + " is required"}
}

// UserMessage picks the text to show for a failed operation: the server's own
// message for API errors that carry one, the validation message for rejected
// input, otherwise the given fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}

	return fallback
}

// IsUnauthorized reports whether err is a rejected credential
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
