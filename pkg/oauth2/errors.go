package oauth2

import (
	"errors"
	"fmt"
)

var (
	ErrAccessDenied    = errors.New("access denied")
	ErrStateMisMatch   = errors.New("state mismatch")
	ErrMissingProvider = errors.New("provider name is required")
	ErrMissingEndpoint = errors.New("provider endpoint is required")
	ErrMissingClient   = errors.New("client id and secret are required")
)

// CallbackError carries the error code the provider sent back to the
// callback URL.
type CallbackError struct {
	Code string
}

func (e *CallbackError) Error() string {
	return "oauth2 callback error: " + e.Code
}

// ResponseError is returned when a provider API answers with a non-2xx
// status.
type ResponseError struct {
	Operation  string
	StatusCode int
	Body       []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s request failed: status %d: %s", e.Operation, e.StatusCode, string(e.Body))
}
