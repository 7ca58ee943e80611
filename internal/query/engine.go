package query

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/gauthierbraillon/folio/internal/content"
)

// Evaluate filters, sorts and paginates items according to d. The input
// slice is never modified.
func Evaluate(items []content.Item, d Descriptor) Page {
	d = d.normalized()
	if canonical, err := ParseCategoryFilter(d.Category); err == nil {
		d.Category = canonical
	}

	matched := filter(items, d)
	sortItems(matched, d.Sort)
	return paginate(matched, d.PageSize, d.Page)
}

// Featured returns up to limit featured items in aggregation order.
func Featured(items []content.Item, limit int) []content.Item {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	out := make([]content.Item, 0, limit)
	for _, item := range items {
		if len(out) == limit {
			break
		}
		if item.Featured {
			out = append(out, item)
		}
	}
	return out
}

func filter(items []content.Item, d Descriptor) []content.Item {
	term := strings.ToLower(d.Search)
	matched := make([]content.Item, 0, len(items))
	for _, item := range items {
		if d.Category != CategoryAll && string(item.Category) != d.Category {
			continue
		}
		if len(d.Origins) > 0 && !slices.Contains(d.Origins, item.Origin) {
			continue
		}
		if term != "" && !matchesTerm(item, term) {
			continue
		}
		matched = append(matched, item)
	}
	return matched
}

func matchesTerm(item content.Item, term string) bool {
	if strings.Contains(strings.ToLower(item.Title), term) ||
		strings.Contains(strings.ToLower(item.Summary), term) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func sortItems(items []content.Item, key SortKey) {
	col := collate.New(language.English)
	slices.SortStableFunc(items, func(a, b content.Item) int {
		if c := compareBy(key, col, a, b); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// compareBy applies the primary order of key; 0 leaves the ID tie-break.
func compareBy(key SortKey, col *collate.Collator, a, b content.Item) int {
	switch key {
	case SortDateAsc:
		return a.PublishedAt.Compare(b.PublishedAt)
	case SortTitleAsc:
		return col.CompareString(a.Title, b.Title)
	case SortTitleDesc:
		return col.CompareString(b.Title, a.Title)
	case SortReadTimeAsc:
		if c := cmp.Compare(a.ReadMinutes, b.ReadMinutes); c != 0 {
			return c
		}
		return b.PublishedAt.Compare(a.PublishedAt)
	case SortReadTimeDesc:
		if c := cmp.Compare(b.ReadMinutes, a.ReadMinutes); c != 0 {
			return c
		}
		return b.PublishedAt.Compare(a.PublishedAt)
	default:
		return b.PublishedAt.Compare(a.PublishedAt)
	}
}

func paginate(sorted []content.Item, size, page int) Page {
	total := len(sorted)
	pages := (total + size - 1) / size
	if pages == 0 {
		return Page{Items: []content.Item{}, PageNumber: 1}
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * size
	end := min(start+size, total)
	return Page{
		Items:      slices.Clone(sorted[start:end]),
		TotalCount: total,
		TotalPages: pages,
		PageNumber: page,
	}
}
