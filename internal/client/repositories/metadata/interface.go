// Package metadata is the client's local key/value store. It keeps the
// session tokens issued by the server between CLI runs.
package metadata

import (
	"context"
)

// Repository reads and writes string values by key. Get returns
// common.ErrorNotFound for an absent key; Delete of an absent key is a no-op.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}
