package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/crossclip/internal/common"
	"github.com/dmitrijs2005/crossclip/internal/dbx"
	"github.com/dmitrijs2005/crossclip/internal/server/auth"
	"github.com/dmitrijs2005/crossclip/internal/server/models"
	itemsrepo "github.com/dmitrijs2005/crossclip/internal/server/repositories/items"
	refreshtokensrepo "github.com/dmitrijs2005/crossclip/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/crossclip/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type fakeUsersRepo struct {
	upsertErr error
	getOut    *models.User
	getErr    error
	upserted  []*models.User
}

func (f *fakeUsersRepo) Upsert(ctx context.Context, u *models.User) (*models.User, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	u.ID = "u-" + u.GoogleSubject
	u.CreatedAt = time.Unix(0, 0)
	f.upserted = append(f.upserted, u)
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRefreshRepo struct {
	findOut   *models.RefreshToken
	findErr   error
	delErr    error
	createErr error

	created []string
	deleted []string
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, tokenHash string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, tokenHash)
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, tokenHash string) error {
	f.deleted = append(f.deleted, tokenHash)
	return f.delErr
}

type fakeItemsRepo struct {
	mu        sync.Mutex
	rows      map[string]*models.Item
	createErr error
	listErr   error
	deleteErr error

	deleteCalls int
}

func newFakeItemsRepo() *fakeItemsRepo {
	return &fakeItemsRepo{rows: map[string]*models.Item{}}
}

func (f *fakeItemsRepo) Create(ctx context.Context, item *models.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cp := *item
	f.rows[item.ID] = &cp
	return nil
}

func (f *fakeItemsRepo) ListByUser(ctx context.Context, userID string) ([]*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Item
	for _, r := range f.rows {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (f *fakeItemsRepo) Delete(ctx context.Context, userID, id string) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	r, ok := f.rows[id]
	if !ok || r.UserID != userID {
		return nil, common.ErrorNotFound
	}
	delete(f.rows, id)
	return r, nil
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	r  *fakeRefreshRepo
	it *fakeItemsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Items(db dbx.DBTX) itemsrepo.Repository                 { return m.it }

type fakeBlobs struct {
	objects map[string][]byte
	putErr  error
	delErr  error
}

func newFakeBlobs() *fakeBlobs { return &fakeBlobs{objects: map[string][]byte{}} }

func (f *fakeBlobs) Put(ctx context.Context, key string, data []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = append([]byte(nil), data...)
	return nil
}

func (f *fakeBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	d, ok := f.objects[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return d, nil
}

func (f *fakeBlobs) Delete(ctx context.Context, key string) error {
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.objects, key)
	return nil
}

type fakeVerifier struct {
	out *auth.Identity
	err error
}

func (f *fakeVerifier) Verify(ctx context.Context, accessToken string) (*auth.Identity, error) {
	return f.out, f.err
}
