package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/crossclip/internal/client/models"
	"github.com/dmitrijs2005/crossclip/internal/client/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_SignIn_RendersItems(t *testing.T) {
	store := &memStore{
		signInAs: ann,
		items:    []models.Item{{ID: "a", Content: "hi", CreatedAt: testNow.UnixMilli(), OwnerID: "u1", OriginDevice: "tab"}},
	}
	a, out := newTestApp(t, store, "")

	require.NoError(t, a.SignIn(context.Background()))
	assert.Contains(t, out.String(), "Signed in as ann@example.com\n1. hi  · tab · Just now\n")
	assert.True(t, a.isSignedIn())

	out.Reset()
	require.NoError(t, a.SignIn(context.Background()))
	assert.Equal(t, "Already signed in as ann@example.com\n", out.String())
}

func TestApp_SignIn_FailureShowsError(t *testing.T) {
	store := &memStore{signInErr: state.NewError(state.ErrAuthFailed, "Sign-in was rejected")}
	a, out := newTestApp(t, store, "")

	require.NoError(t, a.SignIn(context.Background()))
	assert.Contains(t, out.String(), "Error: Sign-in was rejected\n")
	assert.False(t, a.isSignedIn())
}

func TestApp_Share_AddsItemAndRefreshes(t *testing.T) {
	store := &memStore{session: ann}
	a, out := newTestApp(t, store, "hello\nworld\n.\n")

	require.NoError(t, a.Share(context.Background()))

	store.with(func(m *memStore) {
		require.Len(t, m.items, 1)
		assert.Equal(t, models.Item{
			ID:           "id-1",
			Content:      "hello\nworld",
			CreatedAt:    testNow.UnixMilli(),
			OwnerID:      "u1",
			OriginDevice: "box (Linux/amd64, Go 1.25)",
		}, m.items[0])
	})
	assert.Contains(t, out.String(), "Shared.\n")
	assert.Contains(t, out.String(), "1. hello  · box (Linux/amd64, Go 1.25) · Just now\n   world\n")

	st := a.sync.Snapshot()
	assert.False(t, st.ComposerOpen)
	assert.Len(t, st.Items, 1)
}

func TestApp_Share_ResendAfterFailure(t *testing.T) {
	store := &memStore{session: ann, addErrs: []error{state.NewError(state.ErrTransport, "timeout")}}
	a, out := newTestApp(t, store, "x\n.\nsend\n")

	require.NoError(t, a.Share(context.Background()))

	assert.Contains(t, out.String(), "Error: timeout\n")
	assert.Contains(t, out.String(), "Shared.\n")
	store.with(func(m *memStore) { assert.Len(t, m.items, 1) })
	assert.False(t, a.sync.Snapshot().ComposerOpen)
}

func TestApp_Share_DiscardAfterFailure(t *testing.T) {
	store := &memStore{session: ann, addErrs: []error{state.NewError(state.ErrTransport, "timeout")}}
	a, out := newTestApp(t, store, "x\n.\nno thanks\n")

	require.NoError(t, a.Share(context.Background()))

	assert.Contains(t, out.String(), "Discarded.\n")
	store.with(func(m *memStore) { assert.Empty(t, m.items) })
	assert.False(t, a.sync.Snapshot().ComposerOpen)
}

func TestApp_Share_BlankDraftIsRejected(t *testing.T) {
	store := &memStore{session: ann}
	a, out := newTestApp(t, store, "   \n.\n")

	require.NoError(t, a.Share(context.Background()))

	assert.Contains(t, out.String(), "Error: Nothing to share\n")
	assert.Contains(t, out.String(), "Discarded.\n")
	store.with(func(m *memStore) { assert.Empty(t, m.items) })
}

func TestApp_Share_Cancel(t *testing.T) {
	store := &memStore{session: ann}
	a, out := newTestApp(t, store, "draft\ncancel\n")

	require.NoError(t, a.Share(context.Background()))
	assert.Contains(t, out.String(), "Discarded.\n")
	store.with(func(m *memStore) { assert.Empty(t, m.items) })
}

func TestApp_CommandsRequireSession(t *testing.T) {
	a, out := newTestApp(t, &memStore{}, "hello\n.\n")
	ctx := context.Background()

	assert.ErrorIs(t, a.Share(ctx), errNotSignedIn)
	assert.ErrorIs(t, a.Refresh(ctx), errNotSignedIn)
	assert.ErrorIs(t, a.Delete(ctx, "1"), errNotSignedIn)
	assert.ErrorIs(t, a.Copy(ctx, "1"), errNotSignedIn)
	assert.ErrorIs(t, a.SignOut(ctx), errNotSignedIn)
	assert.Contains(t, out.String(), "Please sign in first\n")
}

func TestApp_Delete_ByNumberAndID(t *testing.T) {
	store := &memStore{
		session: ann,
		items: []models.Item{
			{ID: "old", Content: "old", CreatedAt: 1, OwnerID: "u1"},
			{ID: "new", Content: "new", CreatedAt: 2, OwnerID: "u1"},
			{ID: "mid", Content: "mid", CreatedAt: 1, OwnerID: "u1"},
		},
	}
	a, out := newTestApp(t, store, "")
	ctx := context.Background()

	// list is newest first, so #1 is "new"
	require.NoError(t, a.Delete(ctx, "1"))
	assert.Equal(t, []string{"old", "mid"}, ids(a.sync.Snapshot().Items))

	require.NoError(t, a.Delete(ctx, "mid"))
	assert.Equal(t, []string{"old"}, ids(a.sync.Snapshot().Items))

	out.Reset()
	assert.Error(t, a.Delete(ctx, "5"))
	assert.Equal(t, "No item #5, type 'list' to see the numbers\n", out.String())
}

func stubClipboard(t *testing.T, err error) *[]string {
	t.Helper()
	var written []string
	orig := writeClipboard
	writeClipboard = func(text string) error {
		if err != nil {
			return err
		}
		written = append(written, text)
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })
	return &written
}

func TestApp_Copy_ByNumberAndID(t *testing.T) {
	written := stubClipboard(t, nil)
	store := &memStore{
		session: ann,
		items: []models.Item{
			{ID: "old", Content: "first text", CreatedAt: 1, OwnerID: "u1"},
			{ID: "new", Content: "second text", CreatedAt: 2, OwnerID: "u1"},
		},
	}
	a, out := newTestApp(t, store, "")
	ctx := context.Background()

	require.NoError(t, a.Copy(ctx, "1"))
	require.NoError(t, a.Copy(ctx, "old"))
	assert.Equal(t, []string{"second text", "first text"}, *written)
	assert.Equal(t, "Copied to clipboard\nCopied to clipboard\n", out.String())

	out.Reset()
	assert.Error(t, a.Copy(ctx, "3"))
	assert.Error(t, a.Copy(ctx, "gone"))
	assert.Equal(t, "No item #3, type 'list' to see the numbers\nNo item with id gone\n", out.String())
	assert.Len(t, *written, 2)
}

func TestApp_Copy_ClipboardFailure(t *testing.T) {
	stubClipboard(t, errors.New("no display"))
	store := &memStore{session: ann, items: []models.Item{{ID: "a", Content: "x", CreatedAt: 1, OwnerID: "u1"}}}
	a, out := newTestApp(t, store, "")

	assert.Error(t, a.Copy(context.Background(), "1"))
	assert.Contains(t, out.String(), "Error: clipboard unavailable: no display\n")
}

func TestApp_RefreshFailure_Retry(t *testing.T) {
	store := &memStore{session: ann, listErr: state.NewError(state.ErrTransport, "Server unavailable")}
	a, out := newTestApp(t, store, "")
	ctx := context.Background()

	require.NoError(t, a.Refresh(ctx))
	assert.Contains(t, out.String(), "Error: Server unavailable (type 'retry')\n")

	store.with(func(m *memStore) {
		m.listErr = nil
		m.items = []models.Item{{ID: "a", Content: "back", CreatedAt: testNow.UnixMilli(), OwnerID: "u1"}}
	})
	out.Reset()
	require.NoError(t, a.Retry(ctx))
	assert.Equal(t, "Signed in as ann@example.com\n1. back  · unknown device · Just now\n", out.String())

	out.Reset()
	require.NoError(t, a.Retry(ctx))
	assert.Equal(t, "Nothing to retry\n", out.String())
}

func TestApp_SignOut_ResetsView(t *testing.T) {
	store := &memStore{session: ann, items: []models.Item{{ID: "a", OwnerID: "u1"}}}
	a, out := newTestApp(t, store, "")

	out.Reset()
	require.NoError(t, a.SignOut(context.Background()))
	assert.Equal(t, "Not signed in. Type 'signin' to continue with Google.\n", out.String())
	assert.Empty(t, a.sync.Snapshot().Items)
}

func TestApp_List_RendersSnapshotWithoutStoreCalls(t *testing.T) {
	store := &memStore{session: ann}
	a, out := newTestApp(t, store, "")

	store.with(func(m *memStore) { m.listErr = errors.New("must not be called") })
	out.Reset()
	require.NoError(t, a.List(context.Background()))
	assert.Equal(t, "Signed in as ann@example.com\nNothing shared yet. Type 'share' to add something.\n", out.String())
}

func ids(items []models.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
