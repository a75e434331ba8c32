package models

import "time"

// RefreshToken is a stored refresh token. Only the hash of the opaque token
// is persisted.
type RefreshToken struct {
	UserID    string
	TokenHash string
	Expires   time.Time
}
