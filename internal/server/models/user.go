// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a CrossClip account, keyed by the Google subject it signed in with.
type User struct {
	ID            string
	GoogleSubject string
	Email         string
	DisplayName   string
	AvatarURL     string
	CreatedAt     time.Time
}
