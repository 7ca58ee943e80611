package catalog

import (
	"strings"
	"testing"

	"github.com/gauthierbraillon/folio/internal/content"
)

func TestLoad_ReturnsEveryAuthoredPost(t *testing.T) {
	items, err := Load()
	if err != nil {
		t.Fatalf("embedded catalog should load, got: %v", err)
	}
	if len(items) != 15 {
		t.Fatalf("user should see 15 authored posts, got %d", len(items))
	}

	ids := make(map[string]bool)
	for _, item := range items {
		if ids[item.ID] {
			t.Errorf("duplicate id %q", item.ID)
		}
		ids[item.ID] = true
		if item.Origin != content.OriginLocal {
			t.Errorf("authored post %q should have local origin, got %q", item.ID, item.Origin)
		}
		if item.ExternalURL != "" || item.Slug == "" {
			t.Errorf("authored post %q should route to an internal page", item.ID)
		}
		if !strings.HasPrefix(item.ID, "local-") {
			t.Errorf("authored post id should be namespaced, got %q", item.ID)
		}
	}
}

func TestParse_UnknownCategoryFallsBackToGeneral(t *testing.T) {
	doc := []byte(`
posts:
  - slug: odd
    title: Odd One Out
    date: 2024-01-01
    tags: [misc]
    category: Woodworking
    read_minutes: 2
`)
	items, err := Parse(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].Category != content.CategoryGeneral {
		t.Errorf("unmapped category should fall back to General, got %q", items[0].Category)
	}
	if items[0].Summary != "Odd One Out" {
		t.Errorf("missing summary should fall back to title, got %q", items[0].Summary)
	}
}

func TestParse_RejectsInvalidAuthoredData(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bad date", "posts:\n  - {slug: a, title: A, date: yesterday, tags: [x], category: CSS, read_minutes: 1}\n", "invalid date"},
		{"missing slug", "posts:\n  - {title: A, date: 2024-01-01, tags: [x], category: CSS, read_minutes: 1}\n", "slug"},
		{"duplicate slug", "posts:\n  - {slug: a, title: A, date: 2024-01-01, tags: [x], category: CSS, read_minutes: 1}\n  - {slug: a, title: B, date: 2024-01-02, tags: [x], category: CSS, read_minutes: 1}\n", "duplicate"},
		{"malformed yaml", "posts: [", "parsing catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %q, got: %v", tt.want, err)
			}
		})
	}
}
