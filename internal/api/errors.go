package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes callers branch on.
var (
	// ErrSessionExpired means the server rejected the bearer token. The
	// stored credential has already been invalidated by the time callers
	// see this.
	ErrSessionExpired = errors.New("session expired, log in again")

	// ErrForbidden means the server refused the action for this user.
	ErrForbidden = errors.New("not authorized for this action")

	// ErrNotFound means the target report or user does not exist.
	ErrNotFound = errors.New("not found")
)

// Error is a non-2xx response from the backend with the server-provided
// detail, when it sent one.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// Detail extracts the server-provided message from err, falling back to
// the raw error text. This is what gets shown to the moderator.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}
