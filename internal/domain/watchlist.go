package domain

import "time"

// WatchlistItem marks an election a user follows. Rows are always scoped to
// the owning user; cross-user reads are never exposed.
type WatchlistItem struct {
	ID         string
	UserID     string
	ElectionID string
	CreatedAt  time.Time
}
