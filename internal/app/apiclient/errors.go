package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport means the request never completed (network failure,
	// timeout or an open circuit breaker).
	ErrTransport = errors.New("upstream request failed")
	// ErrMalformed means the response body did not have the expected shape.
	ErrMalformed = errors.New("malformed upstream response")
)

// APIError is a non-success HTTP status, with the server supplied message
// when the body carried one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
}

// UserMessage returns the server supplied message carried by err, or
// fallback when there is none.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
