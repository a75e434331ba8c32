package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/crossclip/internal/client/client"
	"github.com/dmitrijs2005/crossclip/internal/client/identity"
	"github.com/dmitrijs2005/crossclip/internal/client/models"
	"github.com/dmitrijs2005/crossclip/internal/client/state"
	"github.com/dmitrijs2005/crossclip/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConsenter struct {
	cred  *identity.Credential
	err   error
	calls int
}

func (f *fakeConsenter) Consent(context.Context) (*identity.Credential, error) {
	f.calls++
	return f.cred, f.err
}

// fakeClient implements client.Client.
type fakeClient struct {
	signInToken string
	signInSess  *models.Session
	signInErr   error

	signOutErr  error
	signOutCall int

	current    *models.Session
	currentErr error

	addID  string
	addErr error
	added  []models.Item

	listItems []models.Item
	listErr   error
	listOwner string

	deleteErr error
	deleted   []string
}

func (f *fakeClient) Close() error                  { return nil }
func (f *fakeClient) Ping(context.Context) error    { return nil }
func (f *fakeClient) SignOut(context.Context) error { f.signOutCall++; return f.signOutErr }

func (f *fakeClient) SignIn(_ context.Context, token string) (*models.Session, error) {
	f.signInToken = token
	return f.signInSess, f.signInErr
}

func (f *fakeClient) CurrentUser(context.Context) (*models.Session, error) {
	return f.current, f.currentErr
}

func (f *fakeClient) AddItem(_ context.Context, item models.Item) (string, error) {
	f.added = append(f.added, item)
	return f.addID, f.addErr
}

func (f *fakeClient) ListItems(_ context.Context, ownerID string) ([]models.Item, error) {
	f.listOwner = ownerID
	return f.listItems, f.listErr
}

func (f *fakeClient) DeleteItem(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

var _ client.Client = (*fakeClient)(nil)

func TestItemStore_SignIn_Success(t *testing.T) {
	idp := &fakeConsenter{cred: &identity.Credential{AccessToken: "g-access", IDToken: "g-id"}}
	fc := &fakeClient{signInSess: &models.Session{UserID: "u1", Email: "a@b.c"}}
	s := NewItemStore(fc, idp, nil)

	sess, err := s.SignIn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "g-id", fc.signInToken, "the server receives the ID token")
	assert.Equal(t, &models.Session{UserID: "u1", Email: "a@b.c", IDToken: "g-id"}, sess)
}

func TestItemStore_SignIn_ErrorKinds(t *testing.T) {
	tests := []struct {
		name      string
		idpErr    error
		serverErr error
		wantKind  error
		wantMsg   string
	}{
		{"cancelled", identity.ErrCancelled, nil, state.ErrUserCancelled, ""},
		{"wrapped cancel", fmt.Errorf("consent: %w", identity.ErrCancelled), nil, state.ErrUserCancelled, ""},
		{"bad credential", identity.ErrInvalidCredential, nil, state.ErrInvalidCredentialType, "Unexpected credential type"},
		{"rejected by google", identity.ErrRejected, nil, state.ErrAuthFailed, identity.ErrRejected.Error()},
		{"network during consent", errors.New("dial tcp: refused"), nil, state.ErrAuthFailed, "dial tcp: refused"},
		{"rejected by server", nil, client.ErrUnauthorized, state.ErrAuthFailed, msgSignInRejected},
		{"server down", nil, client.ErrUnavailable, state.ErrAuthFailed, "Server unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idp := &fakeConsenter{cred: &identity.Credential{AccessToken: "a", IDToken: "i"}, err: tt.idpErr}
			if tt.idpErr != nil {
				idp.cred = nil
			}
			fc := &fakeClient{signInErr: tt.serverErr}
			s := NewItemStore(fc, idp, nil)

			sess, err := s.SignIn(context.Background())
			require.Error(t, err)
			assert.Nil(t, sess)
			assert.ErrorIs(t, state.Kind(err), tt.wantKind)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, state.Message(err))
			}
		})
	}
}

func TestItemStore_SignIn_WithoutIDTokenNeverReachesServer(t *testing.T) {
	idp := &fakeConsenter{cred: &identity.Credential{AccessToken: "a"}}
	fc := &fakeClient{signInSess: &models.Session{UserID: "u1"}}
	s := NewItemStore(fc, idp, nil)

	_, err := s.SignIn(context.Background())
	assert.ErrorIs(t, state.Kind(err), state.ErrInvalidCredentialType)
	assert.Empty(t, fc.signInToken)
}

func TestItemStore_SignIn_NilSessionIsRejected(t *testing.T) {
	idp := &fakeConsenter{cred: &identity.Credential{AccessToken: "a", IDToken: "i"}}
	s := NewItemStore(&fakeClient{}, idp, nil)

	_, err := s.SignIn(context.Background())
	assert.ErrorIs(t, state.Kind(err), state.ErrAuthFailed)
}

func TestItemStore_CurrentSession(t *testing.T) {
	fc := &fakeClient{current: &models.Session{UserID: "u1"}}
	s := NewItemStore(fc, &fakeConsenter{}, nil)

	sess, err := s.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.UserID)

	fc.current = nil
	sess, err = s.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)

	fc.currentErr = client.ErrUnavailable
	_, err = s.CurrentSession(context.Background())
	assert.ErrorIs(t, state.Kind(err), state.ErrTransport)
	assert.Equal(t, "Server unavailable", state.Message(err))
}

func TestItemStore_Items_PassThroughAndMapErrors(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		addID:     "id-1",
		listItems: []models.Item{{ID: "id-1", Content: "x"}},
	}
	s := NewItemStore(fc, &fakeConsenter{}, nil)

	id, err := s.AddItem(ctx, models.Item{Content: "x", OwnerID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)
	require.Len(t, fc.added, 1)

	items, err := s.ListItems(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", fc.listOwner)
	assert.Len(t, items, 1)

	fc.listErr = client.ErrUnauthorized
	_, err = s.ListItems(ctx, "u1")
	assert.ErrorIs(t, state.Kind(err), state.ErrTransport)
	assert.Equal(t, msgSessionExpired, state.Message(err))

	fc.addErr = context.DeadlineExceeded
	_, err = s.AddItem(ctx, models.Item{})
	assert.Equal(t, msgTimeout, state.Message(err))
}

func TestItemStore_DeleteItem_NotFoundIsSuccess(t *testing.T) {
	fc := &fakeClient{deleteErr: common.ErrorNotFound}
	s := NewItemStore(fc, &fakeConsenter{}, nil)

	require.NoError(t, s.DeleteItem(context.Background(), "gone"))
	assert.Equal(t, []string{"gone"}, fc.deleted)

	fc.deleteErr = errors.New("boom")
	err := s.DeleteItem(context.Background(), "x")
	assert.ErrorIs(t, state.Kind(err), state.ErrTransport)
	assert.Equal(t, "boom", state.Message(err))
}

func TestItemStore_SignOut(t *testing.T) {
	fc := &fakeClient{}
	s := NewItemStore(fc, &fakeConsenter{}, nil)

	require.NoError(t, s.SignOut(context.Background()))
	assert.Equal(t, 1, fc.signOutCall)

	fc.signOutErr = client.ErrUnavailable
	err := s.SignOut(context.Background())
	assert.ErrorIs(t, state.Kind(err), state.ErrTransport)
}
