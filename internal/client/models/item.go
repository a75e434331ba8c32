// Package models defines client-side data models used by the CrossClip CLI.
package models

import (
	"fmt"
	"sort"
)

// Item is one shared clipboard entry.
type Item struct {
	// ID is assigned by the server; empty until the item is persisted.
	ID string

	Content string

	// CreatedAt is milliseconds since epoch, stamped by the submitting device.
	CreatedAt int64

	OwnerID      string
	OriginDevice string
}

// Session is the currently authenticated principal.
type Session struct {
	UserID      string
	Email       string
	DisplayName string
	AvatarURL   string

	// IDToken is only set on the value returned by sign-in and never stored.
	IDToken string
}

// SortByCreatedDesc orders items newest first. Items with equal CreatedAt
// keep their relative order.
func SortByCreatedDesc(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})
}

const (
	msPerMinute = 60_000
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// FormatTimestamp renders ts relative to now, both in epoch milliseconds.
func FormatTimestamp(ts, now int64) string {
	diff := now - ts
	switch {
	case diff < msPerMinute:
		return "Just now"
	case diff < msPerHour:
		return fmt.Sprintf("%dm ago", diff/msPerMinute)
	case diff < msPerDay:
		return fmt.Sprintf("%dh ago", diff/msPerHour)
	default:
		return fmt.Sprintf("%dd ago", diff/msPerDay)
	}
}
