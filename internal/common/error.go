// Package common defines shared constants and sentinel errors used across
// the CloudDrive client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Backend / transport errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")

	// Local state errors raised before any request is issued.
	ErrValidation  = errors.New("validation error")
	ErrBusy        = errors.New("request already in progress")
	ErrNotResolved = errors.New("share token not resolved")
	ErrNoLink      = errors.New("no share link")
)
