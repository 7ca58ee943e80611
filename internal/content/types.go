// Package content defines the normalized item shape shared by every source.
//
// This package enables folio to:
// - Represent authored posts and remote records as one Item type
// - Keep categories inside a fixed vocabulary
// - Tag every item with its provenance for badges and failure isolation
package content

import (
	"fmt"
	"strings"
	"time"
)

// Origin identifies the provenance of an item.
type Origin string

const (
	OriginLocal      Origin = "local"
	OriginDevTo      Origin = "devto"
	OriginHackerNews Origin = "hackernews"
	OriginGitHub     Origin = "github"
	OriginRSS        Origin = "rss"
)

// Origins returns every known origin in display order.
func Origins() []Origin {
	return []Origin{OriginLocal, OriginDevTo, OriginHackerNews, OriginGitHub, OriginRSS}
}

// ParseOrigin maps a user-supplied name to an Origin.
func ParseOrigin(s string) (Origin, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, o := range Origins() {
		if string(o) == name {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown origin %q (valid: local, devto, hackernews, github, rss)", s)
}

// Category is a member of the fixed content vocabulary.
type Category string

const (
	CategoryPerformance  Category = "Performance"
	CategoryCSS          Category = "CSS"
	CategoryProgramming  Category = "Programming"
	CategoryFrontendNews Category = "Frontend News"
	CategoryTools        Category = "Tools"
	CategoryGeneral      Category = "General"
)

// Categories returns the vocabulary in canonical order. General is last.
func Categories() []Category {
	return []Category{
		CategoryPerformance,
		CategoryCSS,
		CategoryProgramming,
		CategoryFrontendNews,
		CategoryTools,
		CategoryGeneral,
	}
}

// ParseCategory looks a category up case-insensitively.
// Anything outside the vocabulary falls back to General.
func ParseCategory(s string) Category {
	name := strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(string(c), name) {
			return c
		}
	}
	return CategoryGeneral
}

// IsKnown reports whether c belongs to the vocabulary.
func (c Category) IsKnown() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Item is one displayable content entry, regardless of origin.
type Item struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	PublishedAt time.Time  `json:"published_at"`
	Tags        []string   `json:"tags"`
	Category    Category   `json:"category"`
	ReadMinutes int        `json:"read_minutes"`
	Featured    bool       `json:"featured"`
	Origin      Origin     `json:"origin"`
	Slug        string     `json:"slug,omitempty"`
	ExternalURL string     `json:"external_url,omitempty"`
	Author      string     `json:"author,omitempty"`
	Engagement  Engagement `json:"engagement"`
}

// Engagement holds source-reported popularity numbers.
type Engagement struct {
	Score    int64 `json:"score,omitempty"`
	Comments int64 `json:"comments,omitempty"`
	Forks    int64 `json:"forks,omitempty"`
}
