// Package github provides a read-only client for public GitHub repositories.
//
// This package enables folio to:
// - List a user's public repositories, most recently updated first
// - Show stars, forks and topics next to each project
package github

// Repository represents public repository metadata.
// Timestamps are kept raw; normalization decides which one is canonical.
type Repository struct {
	ID          int64
	Name        string
	FullName    string
	Description string
	HTMLURL     string
	Stars       int64
	Forks       int64
	OpenIssues  int64
	CreatedAt   string
	UpdatedAt   string
	PushedAt    string
	License     string
	Topics      []string
	Owner       string
	Language    string
	Fork        bool
	Archived    bool
}
