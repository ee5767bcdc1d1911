package api

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the backend answers 404 for a lookup.
var ErrNotFound = errors.New("resource not found")

// StatusError carries a non-2xx backend answer that is not a plain 404.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Message)
}
