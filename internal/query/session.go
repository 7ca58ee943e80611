package query

import (
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gauthierbraillon/folio/internal/content"
)

// Session owns the current descriptor and the current aggregated snapshot
// for one browsing session. Snapshots are replaced wholesale, never patched.
type Session struct {
	mu            sync.Mutex
	desc          Descriptor
	snapshot      atomic.Pointer[[]content.Item]
	featuredLimit int
}

// NewSession starts a session on items with the default descriptor.
func NewSession(items []content.Item, featuredLimit int) *Session {
	s := &Session{desc: NewDescriptor(), featuredLimit: featuredLimit}
	s.Replace(items)
	return s
}

// Replace swaps in a freshly aggregated collection.
func (s *Session) Replace(items []content.Item) {
	snap := slices.Clone(items)
	s.snapshot.Store(&snap)
}

// Items returns the current snapshot.
func (s *Session) Items() []content.Item {
	if p := s.snapshot.Load(); p != nil {
		return *p
	}
	return nil
}

// Descriptor returns a copy of the current descriptor.
func (s *Session) Descriptor() Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.desc
	d.Origins = slices.Clone(d.Origins)
	return d
}

// SetSearch changes the search term. A different term resets to page 1.
func (s *Session) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(term) != strings.TrimSpace(s.desc.Search) {
		s.desc.Page = 1
	}
	s.desc.Search = term
}

// SetCategory changes the category filter. A different category resets to page 1.
func (s *Session) SetCategory(category string) error {
	canonical, err := ParseCategoryFilter(category)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if canonical != s.desc.Category {
		s.desc.Page = 1
	}
	s.desc.Category = canonical
	return nil
}

// SetOrigins restricts results to the given origins (none means all).
// A different set resets to page 1; order and repeats do not matter.
func (s *Session) SetOrigins(origins []content.Origin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !sameOrigins(origins, s.desc.Origins) {
		s.desc.Page = 1
	}
	s.desc.Origins = slices.Clone(origins)
}

func sameOrigins(a, b []content.Origin) bool {
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(slices.Compact(x), slices.Compact(y))
}

// SetSort changes the order. The current page number is kept.
func (s *Session) SetSort(key SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.desc.Sort = key
}

// SetPageSize changes the page size and returns to page 1.
func (s *Session) SetPageSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.desc.PageSize = size
	s.desc.Page = 1
}

// SetPage moves to a 1-based page number.
func (s *Session) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.desc.Page = page
}

// ClearFilters drops search, category and origin filters.
func (s *Session) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.desc.Search = ""
	s.desc.Category = CategoryAll
	s.desc.Origins = nil
	s.desc.Page = 1
}

// Current evaluates the descriptor against the current snapshot.
func (s *Session) Current() Page {
	return Evaluate(s.Items(), s.Descriptor())
}

// Featured returns the featured subset of the current snapshot.
func (s *Session) Featured() []content.Item {
	return Featured(s.Items(), s.featuredLimit)
}
