package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable covers network failures and 5xx responses.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized covers 401 responses and backend redirect signals.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError carries the upstream status and message of a failed call.
// Status 0 means the request never produced an HTTP response.
//
// It unwraps to ErrUnauthorized or ErrUnavailable where applicable so
// callers can match with errors.Is.
type APIError struct {
	Status   int
	Message  string
	Redirect bool
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("request failed: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == 401 || e.Redirect:
		return ErrUnauthorized
	case e.Status == 0 || e.Status >= 500:
		return ErrUnavailable
	}
	return nil
}
