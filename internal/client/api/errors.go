package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/clouddrive/internal/common"
)

// Error is a request the backend answered but rejected.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("backend error: %d: %s", e.Status, e.Message)
}

func (e *Error) Is(target error) bool {
	switch target {
	case common.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case common.ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// MessageOr returns the backend's message carried by err, or fallback when
// err carries none.
func MessageOr(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
