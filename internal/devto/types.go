// Package devto provides a client for the public DEV.to articles API.
//
// This package enables folio to:
// - List published articles for a user or a tag
// - Read reading-time estimates and reaction counts for display
package devto

// Article represents a published DEV.to article as returned by the list endpoint.
// PublishedAt is kept as the raw timestamp so normalization decides what is parseable.
type Article struct {
	ID           int64
	Title        string
	Description  string
	BodyMarkdown string
	PublishedAt  string
	Tags         []string
	ReadMinutes  int
	URL          string
	CanonicalURL string
	Author       string
	Reactions    int64
	Comments     int64
}

// ListParams selects which articles to list. Username wins over Tag when both are set.
type ListParams struct {
	Username string
	Tag      string
	PerPage  int
}
