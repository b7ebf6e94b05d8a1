package healthcheck

import (
	"errors"
	"fmt"
)

var (
	ErrRequestFailed = errors.New("healthcheck: request failed")
	ErrBadStatus     = errors.New("healthcheck: unexpected status code")
	ErrUnparseable   = errors.New("healthcheck: unparseable timestamp")
	ErrOutOfSync     = errors.New("healthcheck: time service out of sync")
)

// ParseError is returned when a response body is not a service timestamp.
type ParseError struct {
	Body   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse timestamp %q: %v", e.Body, e.Err)
	}
	return fmt.Sprintf("parse timestamp %q: %s", e.Body, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
