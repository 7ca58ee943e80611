// Package rss provides a client for RSS and Atom feeds.
package rss

import "time"

// Entry represents one feed entry. Published is zero when the feed gives no
// parseable date.
type Entry struct {
	ID          string
	Title       string
	Description string
	Link        string
	Author      string
	Categories  []string
	Published   time.Time
	FeedTitle   string
}
