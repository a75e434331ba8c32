// Package items declares and implements storage of shared items.
package items

import (
	"context"

	"github.com/dmitrijs2005/crossclip/internal/server/models"
)

// Repository persists items. Every operation is scoped to the owning user.
type Repository interface {
	Create(ctx context.Context, item *models.Item) error
	// ListByUser returns the user's items, newest CreatedAt first.
	ListByUser(ctx context.Context, userID string) ([]*models.Item, error)
	// Delete removes the item and returns the removed row so the caller can
	// clean up offloaded content. A missing row yields common.ErrorNotFound.
	Delete(ctx context.Context, userID, id string) (*models.Item, error)
}
