package admin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/naveenspark/salonadmin/pkg/client"
)

// ValidationError is a client-side rejection. It never reaches the network.
// Fields maps a field name to its message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation: " + strings.Join(parts, "; ")
}

// AuthError is a failed login.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Err }

// LoadError is a failed GET: bad status, explicit "ok": false, or a
// transport failure.
type LoadError struct {
	Resource string
	Message  string
	Err      error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %s", e.Resource, e.Message) }
func (e *LoadError) Unwrap() error { return e.Err }

// SaveError is a failed mutation. It never clears previously loaded data.
type SaveError struct {
	Op      string
	Message string
	Err     error
}

func (e *SaveError) Error() string { return fmt.Sprintf("%s: %s", e.Op, e.Message) }
func (e *SaveError) Unwrap() error { return e.Err }

// userMessage prefers the server's error text and falls back to a fixed one.
func userMessage(err error, fallback string) string {
	if msg := client.ServerMessage(err); msg != "" {
		return msg
	}
	return fallback
}

func newLoadError(resource, fallback string, err error) *LoadError {
	return &LoadError{Resource: resource, Message: userMessage(err, fallback), Err: err}
}

func newSaveError(op, fallback string, err error) *SaveError {
	return &SaveError{Op: op, Message: userMessage(err, fallback), Err: err}
}
