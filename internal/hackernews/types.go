// Package hackernews provides a client for the Hacker News Firebase API.
//
// This package enables folio to:
// - Read the current top stories in ranking order
// - Keep only stories relevant to a fixed list of topic words
package hackernews

// Story represents one Hacker News item of type "story".
type Story struct {
	ID          int64
	Title       string
	Text        string
	URL         string
	Time        int64 // unix seconds
	By          string
	Score       int64
	Descendants int64
}
