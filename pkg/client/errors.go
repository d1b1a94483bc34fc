package client

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse is returned when a successful status carries a body that
// lacks what the endpoint promises.
var ErrInvalidResponse = errors.New("invalid response from server")

// APIError is a failed API call: a non-2xx status or an explicit "ok": false.
// Message is the server's error text and may be empty.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// ServerMessage returns the server-provided error text carried by err, if any.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
