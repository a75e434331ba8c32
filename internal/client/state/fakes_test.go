package state

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/crossclip/internal/client/models"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory SharedItemStore that records calls and the
// highest number of calls that were in flight at once.
type fakeStore struct {
	mu sync.Mutex

	session    *models.Session
	sessionErr error

	signInSession *models.Session
	signInErr     error
	signOutErr    error

	items     map[string]models.Item
	order     []string
	listErr   error
	deleteErr error
	addErr    error
	nextID    int

	delay    time.Duration
	listHook func()

	inflight    int
	maxInflight int

	sessionCalls int
	signInCalls  int
	signOutCalls int
	listCalls    []string
	deleteCalls  []string
	added        []models.Item
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: map[string]models.Item{}}
}

func (f *fakeStore) put(items ...models.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range items {
		f.items[it.ID] = it
		f.order = append(f.order, it.ID)
	}
}

func (f *fakeStore) enter() func() {
	f.mu.Lock()
	f.inflight++
	if f.inflight > f.maxInflight {
		f.maxInflight = f.inflight
	}
	delay := f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	return func() {
		f.mu.Lock()
		f.inflight--
		f.mu.Unlock()
	}
}

func (f *fakeStore) set(fn func(f *fakeStore)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeStore) get(fn func(f *fakeStore)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeStore) AddItem(_ context.Context, item models.Item) (string, error) {
	defer f.enter()()
	f.mu.Lock()
	defer f.mu.Unlock()

	f.added = append(f.added, item)
	if f.addErr != nil {
		return "", f.addErr
	}
	f.nextID++
	item.ID = fmt.Sprintf("new-%d", f.nextID)
	f.items[item.ID] = item
	f.order = append(f.order, item.ID)
	return item.ID, nil
}

func (f *fakeStore) ListItems(_ context.Context, ownerID string) ([]models.Item, error) {
	defer f.enter()()

	f.mu.Lock()
	hook := f.listHook
	f.mu.Unlock()
	if hook != nil {
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls = append(f.listCalls, ownerID)
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Item
	for _, id := range f.order {
		if it, ok := f.items[id]; ok && it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteItem(_ context.Context, id string) error {
	defer f.enter()()
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleteCalls = append(f.deleteCalls, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.items, id)
	return nil
}

func (f *fakeStore) SignIn(context.Context) (*models.Session, error) {
	defer f.enter()()
	f.mu.Lock()
	defer f.mu.Unlock()

	f.signInCalls++
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	f.session = f.signInSession
	return f.signInSession, nil
}

func (f *fakeStore) SignOut(context.Context) error {
	defer f.enter()()
	f.mu.Lock()
	defer f.mu.Unlock()

	f.signOutCalls++
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.session = nil
	return nil
}

func (f *fakeStore) CurrentSession(context.Context) (*models.Session, error) {
	defer f.enter()()
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sessionCalls++
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	if f.session == nil {
		return nil, nil
	}
	s := *f.session
	return &s, nil
}

func startSync(t *testing.T, store SharedItemStore, opts ...Option) *Sync {
	t.Helper()
	s := NewSync(store, opts...)
	s.Start(context.Background())
	t.Cleanup(s.Close)
	return s
}

func waitSync(t *testing.T, s *Sync, cond func(SyncState) bool, msg string) SyncState {
	t.Helper()
	require.Eventually(t, func() bool { return cond(s.Snapshot()) }, 2*time.Second, 2*time.Millisecond, msg)
	return s.Snapshot()
}

func waitComposer(t *testing.T, c *Composer, cond func(ComposerState) bool, msg string) ComposerState {
	t.Helper()
	require.Eventually(t, func() bool { return cond(c.Snapshot()) }, 2*time.Second, 2*time.Millisecond, msg)
	return c.Snapshot()
}

func idle(st SyncState) bool { return !st.Busy }

func itemIDs(items []models.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

var u1 = &models.Session{UserID: "u1", Email: "u1@example.com"}
