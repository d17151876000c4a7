package errors

import (
	stdErrors "errors"
	"fmt"
)

// MalformedResponseError represents an HTTP 200 response that is missing
// structure the query explicitly asked for (e.g. pageInfo disappearing
// mid-pagination). Plain absent optional fields are not errors; they map
// to each attribute's documented default instead.
type MalformedResponseError struct {
	Operation string
	Field     string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response for %s: missing %s", e.Operation, e.Field)
}

// NewMalformedResponseError creates a MalformedResponseError for the named field
func NewMalformedResponseError(operation, field string) *MalformedResponseError {
	return &MalformedResponseError{Operation: operation, Field: field}
}

// IsMalformedResponseError reports whether err is a MalformedResponseError (even when wrapped).
func IsMalformedResponseError(err error) bool {
	var malformedErr *MalformedResponseError
	return stdErrors.As(err, &malformedErr)
}
