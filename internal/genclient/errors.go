package genclient

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingCredential reports that no API key is configured.
	ErrMissingCredential = errors.New("genclient: api key not configured")
	// ErrTransport covers network failures and non-2xx responses.
	ErrTransport = errors.New("genclient: transport failure")
	// ErrMalformedResponse covers bodies that cannot be interpreted.
	ErrMalformedResponse = errors.New("genclient: malformed response")
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("genclient: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

func (e *StatusError) Unwrap() error {
	return ErrTransport
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
