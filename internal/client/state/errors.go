package state

import (
	"errors"
)

var (
	ErrUserCancelled         = errors.New("sign-in cancelled")
	ErrInvalidCredentialType = errors.New("invalid credential type")
	ErrAuthFailed            = errors.New("authentication failed")
	ErrTransport             = errors.New("transport failure")
	ErrNotSignedIn           = errors.New("not signed in")

	// ErrClosed is returned by OnEvent after Close.
	ErrClosed = errors.New("state machine closed")
)

// StoreError is a classified failure with a user-facing message.
type StoreError struct {
	Kind error
	Msg  string
}

func (e *StoreError) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *StoreError) Unwrap() error { return e.Kind }

// NewError classifies msg as kind, which should be one of the Err* kinds.
func NewError(kind error, msg string) error {
	return &StoreError{Kind: kind, Msg: msg}
}

// Kind maps any store error onto one of the kinds. Unclassified errors are
// transport failures. Kind(nil) is nil.
func Kind(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUserCancelled):
		return ErrUserCancelled
	case errors.Is(err, ErrInvalidCredentialType):
		return ErrInvalidCredentialType
	case errors.Is(err, ErrAuthFailed):
		return ErrAuthFailed
	case errors.Is(err, ErrNotSignedIn):
		return ErrNotSignedIn
	default:
		return ErrTransport
	}
}

// Message is the text shown to the user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var se *StoreError
	if errors.As(err, &se) {
		return se.Error()
	}
	return err.Error()
}
