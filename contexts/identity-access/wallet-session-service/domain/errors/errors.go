package errors

import "errors"

var (
	ErrProviderUnavailable = errors.New("signing provider unavailable")
	ErrConnectionRejected  = errors.New("wallet connection rejected")
	ErrNotConnected        = errors.New("wallet not connected")
)
