package errors

import (
	stdErrors "errors"
	"fmt"
)

// UpstreamError represents a non-200 response from a remote API.
// Accessors still degrade to "no data"; the transports log the typed
// error so the status survives in the output.
type UpstreamError struct {
	Message    string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// NewUpstreamError creates an upstream access error for the given status code
func NewUpstreamError(statusCode int) *UpstreamError {
	var message string
	switch {
	case statusCode == 404:
		message = "entity not found upstream"
	case statusCode == 429:
		message = "upstream rate limit reached"
	case statusCode >= 500:
		message = "upstream server error"
	default:
		message = "upstream request failed"
	}

	return &UpstreamError{
		Message:    message,
		StatusCode: statusCode,
	}
}

// IsUpstreamError checks if error is an UpstreamError
func IsUpstreamError(err error) bool {
	var upstreamErr *UpstreamError
	return stdErrors.As(err, &upstreamErr)
}
