// Package blobs keeps oversized item content in S3-compatible object storage.
package blobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store is the object storage seam used by the item service.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	// Get returns common.ErrorNotFound when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete succeeds when the key is already gone.
	Delete(ctx context.Context, key string) error
}

// NewKey returns a fresh object key under the owner's prefix.
func NewKey(userID string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("items/%s/%d/%02d/%02d/%v", userID, d.Year(), d.Month(), d.Day(), uuid.New())
}
