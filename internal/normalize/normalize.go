// Package normalize converts source-specific records into content items.
//
// Conversion is per record and never fails the batch: a record that cannot
// become a valid item yields a skip Result with a reason.
package normalize

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/gauthierbraillon/folio/internal/content"
	"github.com/gauthierbraillon/folio/internal/logging"
)

// Result is either a converted item or a skip with its reason.
type Result struct {
	Item   content.Item
	Reason string
	ok     bool
}

// OK reports whether the record converted.
func (r Result) OK() bool { return r.ok }

// Skipped reports whether the record was dropped.
func (r Result) Skipped() bool { return !r.ok }

func ok(item content.Item) Result {
	if err := item.Validate(); err != nil {
		return skip("%v", err)
	}
	return Result{Item: item, ok: true}
}

func skip(format string, args ...any) Result {
	return Result{Reason: fmt.Sprintf(format, args...)}
}

// Batch converts records in ingestion order, keeping successes and logging
// each skip at debug level.
func Batch[T any](logger *zap.Logger, origin content.Origin, records []T, convert func(position int, record T) Result) []content.Item {
	logger = logging.OrNop(logger)
	items := make([]content.Item, 0, len(records))
	for i, record := range records {
		res := convert(i, record)
		if res.Skipped() {
			logger.Debug("skipping record",
				zap.String("origin", string(origin)),
				zap.Int("position", i),
				zap.String("reason", res.Reason))
			continue
		}
		items = append(items, res.Item)
	}
	return items
}

var originCategories = map[content.Origin]content.Category{
	content.OriginDevTo:      content.CategoryProgramming,
	content.OriginHackerNews: content.CategoryFrontendNews,
	content.OriginGitHub:     content.CategoryTools,
}

// CategoryFor maps an origin to its category. Unlisted origins get General.
func CategoryFor(origin content.Origin) content.Category {
	if c, found := originCategories[origin]; found {
		return c
	}
	return content.CategoryGeneral
}

var defaultReadMinutes = map[content.Origin]int{
	content.OriginDevTo:      5,
	content.OriginHackerNews: 3,
	content.OriginGitHub:     4,
	content.OriginRSS:        5,
}

// ReadMinutes returns estimate when positive, else the origin's default.
func ReadMinutes(origin content.Origin, estimate int) int {
	if estimate > 0 {
		return estimate
	}
	if d, found := defaultReadMinutes[origin]; found {
		return d
	}
	return 5
}

var defaultTags = map[content.Origin]string{
	content.OriginDevTo:      "article",
	content.OriginHackerNews: "news",
	content.OriginGitHub:     "repository",
	content.OriginRSS:        "feed",
}

// Tags returns the cleaned source tags, or the origin's single fixed tag.
func Tags(origin content.Origin, source []string) []string {
	tags := make([]string, 0, len(source))
	for _, t := range source {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) > 0 {
		return tags
	}
	if d, found := defaultTags[origin]; found {
		return []string{d}
	}
	return []string{"general"}
}

// summaryOr returns description as plain text, or fallback when it is blank.
func summaryOr(description, fallback string) string {
	if s := plainText(description); s != "" {
		return s
	}
	return fallback
}

// plainText strips markup and collapses whitespace.
func plainText(s string) string {
	if strings.ContainsAny(s, "<&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}
