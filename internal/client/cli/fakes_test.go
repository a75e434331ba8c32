package cli

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/crossclip/internal/client/models"
	"github.com/dmitrijs2005/crossclip/internal/client/state"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory SharedItemStore.
type memStore struct {
	mu sync.Mutex

	session   *models.Session
	signInAs  *models.Session
	signInErr error
	listErr   error
	addErrs   []error

	items  []models.Item
	nextID int
}

func (m *memStore) SignIn(context.Context) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.signInErr != nil {
		return nil, m.signInErr
	}
	m.session = m.signInAs
	return m.session, nil
}

func (m *memStore) SignOut(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func (m *memStore) CurrentSession(context.Context) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *memStore) AddItem(_ context.Context, item models.Item) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.addErrs) > 0 {
		err := m.addErrs[0]
		m.addErrs = m.addErrs[1:]
		if err != nil {
			return "", err
		}
	}
	m.nextID++
	item.ID = fmt.Sprintf("id-%d", m.nextID)
	m.items = append(m.items, item)
	return item.ID, nil
}

func (m *memStore) ListItems(_ context.Context, ownerID string) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []models.Item
	for _, it := range m.items {
		if it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *memStore) DeleteItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memStore) with(fn func(m *memStore)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m)
}

var (
	ann     = &models.Session{UserID: "u1", Email: "ann@example.com"}
	testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

// newTestApp returns a started App whose output goes to the returned
// buffer and whose input is the given lines.
func newTestApp(t *testing.T, store *memStore, input string) (*App, *bytes.Buffer) {
	t.Helper()

	s := state.NewSync(store)
	t.Cleanup(s.Close)

	var out bytes.Buffer
	a := NewApp(Deps{
		Sync:       s,
		Store:      store,
		DeviceInfo: func() string { return "box (Linux/amd64, Go 1.25)" },
		ReadLine:   scannerLines(input),
		Out:        &out,
		Now:        func() time.Time { return testNow },
	})

	s.Start(context.Background())
	require.NoError(t, s.Settle(context.Background()))
	return a, &out
}
