package identity

import "errors"

var (
	// ErrCancelled means the user dismissed the consent step.
	ErrCancelled = errors.New("sign-in cancelled")

	// ErrInvalidCredential means the token endpoint answered with something
	// other than a Bearer token carrying an ID token.
	ErrInvalidCredential = errors.New("unexpected credential type")

	// ErrRejected means Google refused the authorization code.
	ErrRejected = errors.New("credential rejected")
)
