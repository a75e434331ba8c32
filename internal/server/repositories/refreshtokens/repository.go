// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens in persistent storage.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/crossclip/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh
// tokens. Tokens are addressed by their hash; the opaque value is never stored.
type Repository interface {
	// Create stores a new refresh token hash for userID with an expiry of now+validity.
	Create(ctx context.Context, userID string, tokenHash string, validity time.Duration) error

	// Find returns common.ErrorNotFound when the hash is absent.
	Find(ctx context.Context, tokenHash string) (*models.RefreshToken, error)

	// Delete removes a refresh token. Deleting a non-existent token is not an error.
	Delete(ctx context.Context, tokenHash string) error
}
