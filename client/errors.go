package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthenticated is returned by operations that require a session when
// the store holds none. It signals "send the user to login", not a failure.
var ErrUnauthenticated = errors.New("not authenticated")

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// ValidationError is rejected input, caught before any request is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}

// IsValidation reports whether err is a local validation rejection.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
