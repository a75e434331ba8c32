// Package users declares the server-side repository contract for CrossClip
// accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/crossclip/internal/server/models"
)

// Repository stores users keyed by their Google subject.
type Repository interface {
	// Upsert inserts the user or refreshes the profile fields of the existing
	// row with the same GoogleSubject. ID and CreatedAt are filled in.
	Upsert(ctx context.Context, user *models.User) (*models.User, error)

	// GetByID returns common.ErrorNotFound when the user does not exist.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
