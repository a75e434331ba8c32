package models

import "time"

// Item is one shared snippet of text.
type Item struct {
	ID     string
	UserID string
	// Content is empty when the text lives in object storage under StorageKey.
	Content    string
	StorageKey string
	// CreatedAt is the client-supplied creation time in ms since the Unix epoch.
	CreatedAt    int64
	OriginDevice string
	// InsertedAt is when the server stored the row.
	InsertedAt time.Time
}

// Offloaded reports whether the content is kept in object storage.
func (i *Item) Offloaded() bool {
	return i.StorageKey != ""
}
