// Package services adapts the identity provider and the remote API to the
// SharedItemStore used by the client state machines.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/crossclip/internal/client/client"
	"github.com/dmitrijs2005/crossclip/internal/client/identity"
	"github.com/dmitrijs2005/crossclip/internal/client/models"
	"github.com/dmitrijs2005/crossclip/internal/client/state"
	"github.com/dmitrijs2005/crossclip/internal/common"
	"github.com/dmitrijs2005/crossclip/internal/logging"
)

const (
	msgSignInRejected = "Sign-in was rejected"
	msgSessionExpired = "Session expired, please sign in again"
	msgTimeout        = "Request timed out"

	msgUnexpectedCredential = "Unexpected credential type"
)

// Consenter obtains a Google credential from the user.
type Consenter interface {
	Consent(ctx context.Context) (*identity.Credential, error)
}

// ItemStore implements state.SharedItemStore. It keeps no session in memory;
// the stored tokens are the only record of who is signed in.
type ItemStore struct {
	client client.Client
	idp    Consenter
	logger logging.Logger
}

var _ state.SharedItemStore = (*ItemStore)(nil)

func NewItemStore(c client.Client, idp Consenter, logger logging.Logger) *ItemStore {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ItemStore{client: c, idp: idp, logger: logger}
}

func (s *ItemStore) SignIn(ctx context.Context) (*models.Session, error) {
	cred, err := s.idp.Consent(ctx)
	if err != nil {
		return nil, identityError(err)
	}

	if cred == nil || cred.IDToken == "" {
		return nil, state.NewError(state.ErrInvalidCredentialType, msgUnexpectedCredential)
	}

	// The server checks the ID token's audience; access tokens carry none.
	sess, err := s.client.SignIn(ctx, cred.IDToken)
	if err != nil {
		s.logger.Warn(ctx, "server sign-in failed", "error", err)
		if errors.Is(err, client.ErrUnauthorized) {
			return nil, state.NewError(state.ErrAuthFailed, msgSignInRejected)
		}
		return nil, state.NewError(state.ErrAuthFailed, transportMessage(err))
	}
	if sess == nil {
		return nil, state.NewError(state.ErrAuthFailed, msgSignInRejected)
	}

	sess.IDToken = cred.IDToken
	return sess, nil
}

func (s *ItemStore) SignOut(ctx context.Context) error {
	return transportError(s.client.SignOut(ctx))
}

func (s *ItemStore) CurrentSession(ctx context.Context) (*models.Session, error) {
	sess, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, transportError(err)
	}
	return sess, nil
}

func (s *ItemStore) AddItem(ctx context.Context, item models.Item) (string, error) {
	id, err := s.client.AddItem(ctx, item)
	if err != nil {
		return "", transportError(err)
	}
	return id, nil
}

func (s *ItemStore) ListItems(ctx context.Context, ownerID string) ([]models.Item, error) {
	items, err := s.client.ListItems(ctx, ownerID)
	if err != nil {
		return nil, transportError(err)
	}
	return items, nil
}

// DeleteItem treats an unknown id as already deleted.
func (s *ItemStore) DeleteItem(ctx context.Context, id string) error {
	err := s.client.DeleteItem(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return transportError(err)
}

func identityError(err error) error {
	switch {
	case errors.Is(err, identity.ErrCancelled):
		return state.NewError(state.ErrUserCancelled, err.Error())
	case errors.Is(err, identity.ErrInvalidCredential):
		return state.NewError(state.ErrInvalidCredentialType, msgUnexpectedCredential)
	default:
		return state.NewError(state.ErrAuthFailed, err.Error())
	}
}

func transportError(err error) error {
	if err == nil {
		return nil
	}
	return state.NewError(state.ErrTransport, transportMessage(err))
}

func transportMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable"
	case errors.Is(err, client.ErrUnauthorized):
		return msgSessionExpired
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	default:
		return err.Error()
	}
}
