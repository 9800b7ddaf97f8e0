package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AuthenticationError is returned when a call requires credentials that are missing.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return "authentication failed: " + e.Reason
}

// HTTPStatusError is returned when the response status is outside [200, 300).
type HTTPStatusError struct {
	Method string
	URL    string
	Status int
	Header http.Header
	// Body is a truncated copy of the response body.
	Body string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if e.Method != "" {
		b.WriteString(e.Method)
		b.WriteString(" ")
	}
	if e.URL != "" {
		b.WriteString(e.URL)
		b.WriteString(": ")
	}
	b.WriteString(fmt.Sprintf("http %d", e.Status))
	if t := http.StatusText(e.Status); t != "" {
		b.WriteString(" ")
		b.WriteString(t)
	}
	if e.Body != "" {
		b.WriteString(": ")
		b.WriteString(e.Body)
	}
	return b.String()
}

// CoercionError reports a decoded value that does not fit the declared return shape.
type CoercionError struct {
	Shape string
	Value any
	Err   error
}

func (e *CoercionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("cannot coerce %T into %s", e.Value, e.Shape)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CoercionError) Unwrap() error { return e.Err }

// AsHTTPStatusError extracts *HTTPStatusError.
func AsHTTPStatusError(err error) (*HTTPStatusError, bool) {
	var se *HTTPStatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsHTTPStatus reports whether err carries the given response status.
func IsHTTPStatus(err error, code int) bool {
	se, ok := AsHTTPStatusError(err)
	return ok && se.Status == code
}

// IsAuthentication reports whether err is an *AuthenticationError.
func IsAuthentication(err error) bool {
	var ae *AuthenticationError
	return errors.As(err, &ae)
}

func bodySnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
