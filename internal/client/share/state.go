package share

import (
	"fmt"
	"strings"
)

type Tab int

const (
	TabUser Tab = iota
	TabLink
)

func (t Tab) String() string {
	if t == TabLink {
		return "link"
	}
	return "user"
}

func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return TabUser, nil
	case "link":
		return TabLink, nil
	}
	return TabUser, fmt.Errorf("unknown tab %q (want user or link)", s)
}

// Status is the lifecycle of one tab's form.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return "idle"
}

type FormState struct {
	Status  Status
	Message string
}

type LookupStatus int

const (
	LookupNone LookupStatus = iota
	LookupFound
	LookupNotFound
	LookupFailed
)

// Lookup is the outcome of asking for a file's existing link. NotFound and
// Failed are both silent in the UI; Err carries the cause.
type Lookup struct {
	Status LookupStatus
	Err    error
}
