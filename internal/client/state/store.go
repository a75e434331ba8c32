package state

import (
	"context"

	"github.com/dmitrijs2005/crossclip/internal/client/models"
)

// SharedItemStore is everything the state machines need from identity and
// storage. Errors are classified with Kind.
type SharedItemStore interface {
	AddItem(ctx context.Context, item models.Item) (string, error)
	ListItems(ctx context.Context, ownerID string) ([]models.Item, error)

	// DeleteItem succeeds for an id that does not exist.
	DeleteItem(ctx context.Context, id string) error

	SignIn(ctx context.Context) (*models.Session, error)
	SignOut(ctx context.Context) error

	// CurrentSession returns nil, nil when nobody is signed in.
	CurrentSession(ctx context.Context) (*models.Session, error)
}
