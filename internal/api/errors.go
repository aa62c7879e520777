package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is the single failure type returned by Client. Every failure
// (network, HTTP status, undecodable body) carries a display message;
// Status is the HTTP status when a response was received, otherwise 0.
type Error struct {
	Status  int
	Message string
	Err     error
}

// Error returns the display message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying transport or decode error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrMissingToken is returned by Login when the API answers without a token.
var ErrMissingToken = errors.New("login response did not include a token")

// IsUnauthorized reports whether err means the session is no longer valid.
// A 401 status matches, and so does any message containing "401", so a
// server message such as "token expired (401)" also ends the session.
func IsUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return true
	}
	return strings.Contains(err.Error(), "401")
}

// statusError builds the error for a non-2xx response. The server's
// "message" field wins over "error"; otherwise the status is synthesized.
func statusError(status int, body map[string]any) *Error {
	for _, key := range []string{"message", "error"} {
		if s, ok := body[key].(string); ok && s != "" {
			return &Error{Status: status, Message: s}
		}
	}
	return &Error{Status: status, Message: fmt.Sprintf("HTTP %d", status)}
}
