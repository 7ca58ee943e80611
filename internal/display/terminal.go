// Package display provides terminal output formatting for folio.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/gauthierbraillon/folio/internal/chat"
	"github.com/gauthierbraillon/folio/internal/content"
	"github.com/gauthierbraillon/folio/internal/query"
)

const separator = " • "

// TerminalFormatter formats content items for terminal display.
type TerminalFormatter struct {
	siteURL string
}

// Option configures a TerminalFormatter.
type Option func(*TerminalFormatter)

// WithSiteURL resolves local post links against the portfolio's base URL.
func WithSiteURL(u string) Option {
	return func(f *TerminalFormatter) {
		f.siteURL = u
	}
}

// NewTerminalFormatter creates a new terminal formatter.
func NewTerminalFormatter(opts ...Option) *TerminalFormatter {
	f := &TerminalFormatter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FormatItem formats a single content item for display.
func (f *TerminalFormatter) FormatItem(item content.Item) string {
	var lines []string

	// Header: [ORIGIN] Title
	header := badgeStyle.Render(fmt.Sprintf("[%s]", strings.ToUpper(string(item.Origin)))) + " " + titleStyle.Render(item.Title)
	if item.Featured {
		header += " " + starStyle.Render("★")
	}
	lines = append(lines, header)

	meta := []string{string(item.Category), f.FormatTimestamp(item.PublishedAt), fmt.Sprintf("%d min read", item.ReadMinutes)}
	if item.Author != "" {
		meta = append([]string{"by " + item.Author}, meta...)
	}
	lines = append(lines, "  "+metaStyle.Render(strings.Join(meta, separator)))

	if item.Summary != "" {
		lines = append(lines, "  "+f.TruncateText(item.Summary, 140))
	}
	if len(item.Tags) > 0 {
		lines = append(lines, "  "+metaStyle.Render("#"+strings.Join(item.Tags, " #")))
	}
	if engagement := f.formatEngagement(item.Engagement); engagement != "" {
		lines = append(lines, "  "+engagement)
	}

	lines = append(lines, "  "+linkStyle.Render(item.LinkFrom(f.siteURL))+metaStyle.Render(separator+"id "+item.ID))

	return strings.Join(lines, "\n") + "\n"
}

// formatEngagement formats engagement stats into a single line.
func (f *TerminalFormatter) formatEngagement(e content.Engagement) string {
	var parts []string

	if e.Score > 0 {
		parts = append(parts, fmt.Sprintf("%d points", e.Score))
	}
	if e.Comments > 0 {
		parts = append(parts, fmt.Sprintf("%d comments", e.Comments))
	}
	if e.Forks > 0 {
		parts = append(parts, fmt.Sprintf("%d forks", e.Forks))
	}

	return strings.Join(parts, separator)
}

// FormatItems formats multiple items for display.
func (f *TerminalFormatter) FormatItems(items []content.Item) string {
	formatted := make([]string, 0, len(items))
	for _, item := range items {
		formatted = append(formatted, f.FormatItem(item))
	}
	return strings.Join(formatted, "\n")
}

// FormatPage formats one page of query results with a position footer.
// An empty page gets a "No results" message with a hint to clear filters.
func (f *TerminalFormatter) FormatPage(page query.Page) string {
	if page.Empty() {
		return "No results match your filters.\n" +
			metaStyle.Render("Try a different search, or clear filters with --category All and no --search.") + "\n"
	}

	footer := metaStyle.Render(fmt.Sprintf("Page %d of %d%s%d items", page.PageNumber, page.TotalPages, separator, page.TotalCount))
	return f.FormatItems(page.Items) + "\n" + footer + "\n"
}

// FormatFeatured formats the featured block.
func (f *TerminalFormatter) FormatFeatured(items []content.Item) string {
	if len(items) == 0 {
		return "No featured content yet.\n"
	}
	return headingStyle.Render("Featured") + "\n\n" + f.FormatItems(items)
}

// FormatNotice formats a partial-failure notice. Empty notices render as nothing.
func (f *TerminalFormatter) FormatNotice(notice string) string {
	if notice == "" {
		return ""
	}
	return noticeStyle.Render("! "+notice) + "\n"
}

// FormatTranscript formats a chat transcript.
func (f *TerminalFormatter) FormatTranscript(turns []chat.Turn) string {
	var b strings.Builder
	for _, turn := range turns {
		switch turn.Role {
		case chat.RoleUser:
			b.WriteString(youStyle.Render("you") + ": " + turn.Text + "\n")
		default:
			b.WriteString(botStyle.Render("folio") + ": " + turn.Text + "\n")
		}
	}
	return b.String()
}

// FormatTimestamp formats a timestamp as relative time.
func (f *TerminalFormatter) FormatTimestamp(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return pluralize(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return pluralize(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return pluralize(int(diff.Hours()/24), "day")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// pluralize returns "N unit ago" or "N units ago" based on count.
func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// TruncateText truncates text to maxLen runes, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(runes[:maxLen-3]) + "..."
}
