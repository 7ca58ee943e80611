package content

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateOnly truncates t to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// NamespacedID prefixes a source-native identifier with its origin.
func NamespacedID(origin Origin, nativeID string) string {
	return string(origin) + "-" + nativeID
}

// Validate checks the invariants every aggregated item must hold.
func (i Item) Validate() error {
	var problems []string

	if i.ID == "" {
		problems = append(problems, "id is required")
	}
	if strings.TrimSpace(i.Title) == "" {
		problems = append(problems, "title is required")
	}
	if i.PublishedAt.IsZero() {
		problems = append(problems, "published date is required")
	}
	if !i.Category.IsKnown() {
		problems = append(problems, fmt.Sprintf("category %q is not in the vocabulary", i.Category))
	}
	if i.ReadMinutes <= 0 {
		problems = append(problems, "read time must be positive")
	}
	if len(i.Tags) == 0 {
		problems = append(problems, "at least one tag is required")
	}
	switch {
	case i.Slug != "" && i.ExternalURL != "":
		problems = append(problems, "slug and external url are mutually exclusive")
	case i.Slug == "" && i.ExternalURL == "":
		problems = append(problems, "one of slug or external url is required")
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New("invalid item " + quoteID(i.ID) + ": " + strings.Join(problems, "; "))
}

// Link returns where a reader should be sent for this item.
func (i Item) Link() string {
	if i.ExternalURL != "" {
		return i.ExternalURL
	}
	return "/blog/" + i.Slug
}

// LinkFrom resolves Link against the site's base URL. External links are
// returned unchanged.
func (i Item) LinkFrom(siteURL string) string {
	if i.IsExternal() || siteURL == "" {
		return i.Link()
	}
	return strings.TrimRight(siteURL, "/") + i.Link()
}

// IsExternal reports whether the item routes the reader off-site.
func (i Item) IsExternal() bool {
	return i.ExternalURL != ""
}

func quoteID(id string) string {
	if id == "" {
		return "<no id>"
	}
	return fmt.Sprintf("%q", id)
}
