package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrRemoteUnavailable marks a failed availability probe. It is handled
	// internally by falling back and is never surfaced to gateway callers.
	ErrRemoteUnavailable = errors.New("remote ledger unavailable")

	ErrMomentNotFound = errors.New("moment not found")
)

// RemoteRejectedError carries a remote-originated rejection verbatim.
type RemoteRejectedError struct {
	Reason string
}

func (e *RemoteRejectedError) Error() string {
	return "ledger rejected request: " + e.Reason
}

// ValidationError reports a local precondition violation detected before
// any network attempt.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
