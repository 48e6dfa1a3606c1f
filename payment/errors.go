package payment

import (
	"errors"
	"fmt"
)

var (
	ErrUserCancelled      = errors.New("the payment flow has been canceled")
	ErrSheetNotConfigured = errors.New("payment sheet has not been configured")
)

// NetworkError covers every way a client secret fetch can fail: the server was
// unreachable, answered non-2xx, or sent a body without a usable secret.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ConfigError is returned by a sheet that rejects the client secret or the
// merchant configuration. Message is shown to the user as is.
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

type PresentationError struct {
	Err error
}

func (e *PresentationError) Error() string {
	return fmt.Sprintf("payment sheet: %v", e.Err)
}

func (e *PresentationError) Unwrap() error { return e.Err }

// CancelledError carries the sheet's wording for a user cancellation.
type CancelledError struct {
	Message string
}

func (e *CancelledError) Error() string {
	if e.Message == "" {
		return ErrUserCancelled.Error()
	}
	return e.Message
}

func (e *CancelledError) Is(target error) bool { return target == ErrUserCancelled }
