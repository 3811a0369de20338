package client

import "encoding/json"

// FieldError is a per-field validation failure reported by the backend.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Response is the envelope every backend endpoint answers with.
// Success implies Data is set; failure implies Message or Errors explain why.
type Response[T any] struct {
	Success bool         `json:"success"`
	Data    *T           `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Value returns the payload and whether the envelope reported success with data.
func (r *Response[T]) Value() (T, bool) {
	var zero T
	if r == nil || !r.Success || r.Data == nil {
		return zero, false
	}
	return *r.Data, true
}

// Err returns an *EnvelopeError when the envelope reported failure, nil otherwise.
func (r *Response[T]) Err() error {
	if r == nil || r.Success {
		return nil
	}
	msg := r.Message
	if msg == "" && len(r.Errors) == 0 {
		msg = genericFailure
	}
	return &EnvelopeError{Message: msg, Errors: r.Errors}
}

// Ack is the payload type for endpoints whose data carries nothing the caller needs.
type Ack = json.RawMessage

// errorBody is the subset of a failed response used to build an HTTPError.
type errorBody struct {
	Message string       `json:"message"`
	Error   string       `json:"error"`
	Errors  []FieldError `json:"errors"`
}
