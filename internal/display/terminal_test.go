package display

import (
	"strings"
	"testing"
	"time"

	"github.com/gauthierbraillon/folio/internal/chat"
	"github.com/gauthierbraillon/folio/internal/content"
	"github.com/gauthierbraillon/folio/internal/query"
)

func devtoItem() content.Item {
	return content.Item{
		ID:          "devto-42",
		Title:       "How to Build CLI Tools in Go",
		Summary:     "A walkthrough of cobra and friends.",
		PublishedAt: time.Now(),
		Tags:        []string{"go", "cli"},
		Category:    content.CategoryProgramming,
		ReadMinutes: 7,
		Origin:      content.OriginDevTo,
		ExternalURL: "https://dev.to/someone/cli-tools-42",
		Author:      "Tech Writer",
		Engagement:  content.Engagement{Score: 12, Comments: 3},
	}
}

func TestAC300_TerminalContent_ShowsTitleAuthorAndOrigin(t *testing.T) {
	output := NewTerminalFormatter().FormatItem(devtoItem())

	if !strings.Contains(output, "How to Build CLI Tools in Go") {
		t.Error("user should see the title in terminal output")
	}
	if !strings.Contains(output, "Tech Writer") {
		t.Error("user should see the author name in terminal output")
	}
	if !strings.Contains(output, "[DEVTO]") {
		t.Error("user should see an origin badge in terminal output")
	}
}

func TestAC300_TerminalContent_ShowsReadTimeTagsAndEngagement(t *testing.T) {
	output := NewTerminalFormatter().FormatItem(devtoItem())

	for _, want := range []string{"7 min read", "#go #cli", "12 points", "3 comments", "Programming"} {
		if !strings.Contains(output, want) {
			t.Errorf("user should see %q in terminal output:\n%s", want, output)
		}
	}
}

func TestAC301_TerminalContent_ShowsRelativeTimestamps(t *testing.T) {
	formatter := NewTerminalFormatter()
	testCases := []struct {
		name      string
		timestamp time.Time
		contains  string
	}{
		{"recent minutes", time.Now().Add(-30 * time.Minute), "min"},
		{"recent hours", time.Now().Add(-3 * time.Hour), "hour"},
		{"recent days", time.Now().Add(-48 * time.Hour), "day"},
		{"older", time.Date(2023, 9, 12, 0, 0, 0, 0, time.UTC), "Sep 12, 2023"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output := formatter.FormatTimestamp(tc.timestamp)
			if !strings.Contains(output, tc.contains) {
				t.Errorf("user should see %q for %s content, got %q", tc.contains, tc.name, output)
			}
		})
	}
}

func TestAC302_TerminalContent_ShowsLinks(t *testing.T) {
	output := NewTerminalFormatter().FormatItem(devtoItem())
	if !strings.Contains(output, "https://dev.to/someone/cli-tools-42") {
		t.Error("user should see the external URL in terminal output")
	}

	local := content.Item{ID: "local-hello", Title: "Hello", Slug: "hello", Origin: content.OriginLocal, PublishedAt: time.Now(), ReadMinutes: 2}
	output = NewTerminalFormatter(WithSiteURL("https://example.dev")).FormatItem(local)
	if !strings.Contains(output, "https://example.dev/blog/hello") {
		t.Errorf("user should see the blog URL for authored posts:\n%s", output)
	}
}

func TestAC303_TerminalContent_TruncatesLongText(t *testing.T) {
	formatter := NewTerminalFormatter()
	longText := "This is a very long text that should be truncated because it exceeds the maximum length"

	truncated := formatter.TruncateText(longText, 20)

	if len(truncated) > 20 {
		t.Errorf("user should see truncated text (max 20 chars), got %d chars", len(truncated))
	}
	if !strings.HasSuffix(truncated, "...") {
		t.Error("user should see ellipsis indicating text was truncated")
	}
}

func TestAC303_TerminalContent_PreservesShortText(t *testing.T) {
	output := NewTerminalFormatter().TruncateText("Short", 20)

	if output != "Short" {
		t.Errorf("user should see full text when under limit, got: %s", output)
	}
}

func TestAC303_TerminalContent_TruncatesOnRuneBoundary(t *testing.T) {
	output := NewTerminalFormatter().TruncateText("Écrire du CSS moderne", 8)
	if output != "Écrir..." {
		t.Errorf("truncation should not split characters, got %q", output)
	}
}

func TestAC304_TerminalContent_ShowsPageWithPosition(t *testing.T) {
	second := devtoItem()
	second.ID = "devto-43"
	second.Title = "Second Post"
	page := query.Page{Items: []content.Item{devtoItem(), second}, TotalCount: 8, TotalPages: 4, PageNumber: 2}

	output := NewTerminalFormatter().FormatPage(page)

	if !strings.Contains(output, "How to Build CLI Tools in Go") || !strings.Contains(output, "Second Post") {
		t.Error("user should see every item on the page")
	}
	if !strings.Contains(output, "Page 2 of 4") || !strings.Contains(output, "8 items") {
		t.Errorf("user should see where they are in the results:\n%s", output)
	}
}

func TestAC305_TerminalContent_ShowsNoResultsWithHint(t *testing.T) {
	output := NewTerminalFormatter().FormatPage(query.Page{Items: []content.Item{}})

	if !strings.Contains(output, "No results") {
		t.Error("user should see that nothing matched")
	}
	if !strings.Contains(output, "clear filters") {
		t.Error("user should be told how to clear filters")
	}
}

func TestAC306_TerminalContent_ShowsFeaturedBlock(t *testing.T) {
	item := devtoItem()
	item.Featured = true

	output := NewTerminalFormatter().FormatFeatured([]content.Item{item})
	if !strings.Contains(output, "Featured") || !strings.Contains(output, "★") {
		t.Errorf("user should see a featured heading and marker:\n%s", output)
	}
	if !strings.Contains(NewTerminalFormatter().FormatFeatured(nil), "No featured") {
		t.Error("user should see a message when nothing is featured")
	}
}

func TestAC307_TerminalContent_ShowsFailureNotice(t *testing.T) {
	f := NewTerminalFormatter()
	if f.FormatNotice("") != "" {
		t.Error("no notice should render as nothing")
	}
	if out := f.FormatNotice("Some content could not be loaded (github)."); !strings.Contains(out, "github") {
		t.Errorf("user should see which origin failed, got %q", out)
	}
}

func TestAC308_TerminalContent_ShowsChatTranscript(t *testing.T) {
	turns := []chat.Turn{
		{Role: chat.RoleUser, Text: "what stack?"},
		{Role: chat.RoleAssistant, Text: "Go and TypeScript."},
	}

	output := NewTerminalFormatter().FormatTranscript(turns)

	if !strings.Contains(output, "you: what stack?") || !strings.Contains(output, "folio: Go and TypeScript.") {
		t.Errorf("user should see both sides of the conversation:\n%s", output)
	}
}
