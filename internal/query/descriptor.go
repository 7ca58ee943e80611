// Package query evaluates search, filter, sort and pagination over an
// aggregated content collection.
//
// Evaluation is pure and deterministic: the same collection and descriptor
// always give the same page, in the same order.
package query

import (
	"fmt"
	"strings"

	"github.com/gauthierbraillon/folio/internal/content"
)

// CategoryAll matches every category.
const CategoryAll = "All"

// DefaultPageSize is used when a descriptor has no positive page size.
const DefaultPageSize = 6

// DefaultFeaturedLimit caps the featured view.
const DefaultFeaturedLimit = 3

// SortKey selects the total order applied to filtered results.
type SortKey string

const (
	SortDateDesc     SortKey = "date-desc"
	SortDateAsc      SortKey = "date-asc"
	SortTitleAsc     SortKey = "title-asc"
	SortTitleDesc    SortKey = "title-desc"
	SortReadTimeAsc  SortKey = "read-asc"
	SortReadTimeDesc SortKey = "read-desc"
)

// SortKeys returns every supported key.
func SortKeys() []SortKey {
	return []SortKey{SortDateDesc, SortDateAsc, SortTitleAsc, SortTitleDesc, SortReadTimeAsc, SortReadTimeDesc}
}

var sortAliases = map[string]SortKey{
	"newest":   SortDateDesc,
	"oldest":   SortDateAsc,
	"title":    SortTitleAsc,
	"a-z":      SortTitleAsc,
	"z-a":      SortTitleDesc,
	"quick":    SortReadTimeAsc,
	"shortest": SortReadTimeAsc,
	"long":     SortReadTimeDesc,
	"longest":  SortReadTimeDesc,
}

// ParseSortKey accepts a key or one of its friendly aliases. Empty means newest first.
func ParseSortKey(s string) (SortKey, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return SortDateDesc, nil
	}
	for _, k := range SortKeys() {
		if string(k) == name {
			return k, nil
		}
	}
	if k, found := sortAliases[name]; found {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort %q (valid: date-desc, date-asc, title-asc, title-desc, read-asc, read-desc)", s)
}

// ParseCategoryFilter validates a user-supplied category filter. Unlike item
// normalization, unknown names are rejected instead of mapped to General.
func ParseCategoryFilter(s string) (string, error) {
	name := strings.TrimSpace(s)
	if name == "" || strings.EqualFold(name, CategoryAll) {
		return CategoryAll, nil
	}
	for _, c := range content.Categories() {
		if strings.EqualFold(string(c), name) {
			return string(c), nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Descriptor is the complete set of user-controlled query parameters.
type Descriptor struct {
	Search   string
	Category string           // CategoryAll or a vocabulary member
	Origins  []content.Origin // empty means every origin
	Sort     SortKey
	PageSize int
	Page     int // 1-based
}

// NewDescriptor returns the unfiltered, newest-first first page.
func NewDescriptor() Descriptor {
	return Descriptor{Category: CategoryAll, Sort: SortDateDesc, PageSize: DefaultPageSize, Page: 1}
}

func (d Descriptor) normalized() Descriptor {
	d.Search = strings.TrimSpace(d.Search)
	if d.Category == "" {
		d.Category = CategoryAll
	}
	if d.Sort == "" {
		d.Sort = SortDateDesc
	}
	if d.PageSize <= 0 {
		d.PageSize = DefaultPageSize
	}
	if d.Page < 1 {
		d.Page = 1
	}
	return d
}

// Page is one evaluated view of the collection.
type Page struct {
	Items      []content.Item `json:"items"`
	TotalCount int            `json:"total_count"`
	TotalPages int            `json:"total_pages"`
	PageNumber int            `json:"page_number"`
}

// Empty reports whether the filters matched nothing.
func (p Page) Empty() bool {
	return p.TotalCount == 0
}
