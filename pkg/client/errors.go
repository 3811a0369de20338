package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedQuery is returned when a query value is not a flat scalar.
var ErrUnsupportedQuery = errors.New("unsupported query value")

// genericFailure is used when a failed response carries no message of its own.
const genericFailure = "request failed"

// HTTPError represents a non-2xx HTTP response from the API.
type HTTPError struct {
	StatusCode int
	Message    string
	Errors     []FieldError
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// DecodeError is returned when a response body is not valid JSON.
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response (HTTP %d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EnvelopeError describes a 2xx response whose envelope reported success=false.
// The client never returns it from a request; callers get it from Response.Err.
type EnvelopeError struct {
	Message string
	Errors  []FieldError
}

func (e *EnvelopeError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	if e.Message == "" {
		return strings.Join(parts, "; ")
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}
