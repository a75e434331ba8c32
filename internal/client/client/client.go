package client

import (
	"context"

	"github.com/dmitrijs2005/crossclip/internal/client/models"
)

// Client is the remote API used by the CLI.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	SignIn(ctx context.Context, googleIDToken string) (*models.Session, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.Session, error)
	AddItem(ctx context.Context, item models.Item) (string, error)
	ListItems(ctx context.Context, ownerID string) ([]models.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// TokenStore persists the session tokens issued by the server. Tokens
// returns empty strings when nothing is stored.
type TokenStore interface {
	Tokens(ctx context.Context) (accessToken, refreshToken string, err error)
	SaveTokens(ctx context.Context, accessToken, refreshToken string) error
	ClearTokens(ctx context.Context) error
}
