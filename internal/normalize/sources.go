package normalize

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gauthierbraillon/folio/internal/content"
	"github.com/gauthierbraillon/folio/internal/devto"
	"github.com/gauthierbraillon/folio/internal/github"
	"github.com/gauthierbraillon/folio/internal/hackernews"
	"github.com/gauthierbraillon/folio/internal/rss"
)

// DevToArticle converts a DEV.to article. Articles at ingestion positions
// below featuredTopN are flagged as featured.
func DevToArticle(a devto.Article, position, featuredTopN int) Result {
	if a.ID == 0 {
		return skip("article has no id")
	}
	title := strings.TrimSpace(a.Title)
	if title == "" {
		return skip("article %d has no title", a.ID)
	}
	if strings.TrimSpace(a.PublishedAt) == "" {
		return skip("article %d has no publication date", a.ID)
	}
	published, err := time.Parse(time.RFC3339, strings.TrimSpace(a.PublishedAt))
	if err != nil {
		return skip("article %d has unparsable date %q", a.ID, a.PublishedAt)
	}
	link := a.URL
	if link == "" {
		link = a.CanonicalURL
	}
	if link == "" {
		return skip("article %d has no url", a.ID)
	}

	return ok(content.Item{
		ID:          content.NamespacedID(content.OriginDevTo, strconv.FormatInt(a.ID, 10)),
		Title:       title,
		Summary:     summaryOr(a.Description, title),
		PublishedAt: content.DateOnly(published),
		Tags:        Tags(content.OriginDevTo, a.Tags),
		Category:    CategoryFor(content.OriginDevTo),
		ReadMinutes: ReadMinutes(content.OriginDevTo, a.ReadMinutes),
		Featured:    position < featuredTopN,
		Origin:      content.OriginDevTo,
		ExternalURL: link,
		Author:      a.Author,
		Engagement:  content.Engagement{Score: a.Reactions, Comments: a.Comments},
	})
}

// HackerNewsStory converts a Hacker News story. Stories without an outbound
// link point at their discussion page.
func HackerNewsStory(s hackernews.Story) Result {
	if s.ID == 0 {
		return skip("story has no id")
	}
	title := strings.TrimSpace(s.Title)
	if title == "" {
		return skip("story %d has no title", s.ID)
	}
	if s.Time <= 0 {
		return skip("story %d has no timestamp", s.ID)
	}
	link := s.URL
	if link == "" {
		link = hackernews.DiscussionURL(s.ID)
	}

	return ok(content.Item{
		ID:          content.NamespacedID(content.OriginHackerNews, strconv.FormatInt(s.ID, 10)),
		Title:       title,
		Summary:     summaryOr(s.Text, title),
		PublishedAt: content.DateOnly(time.Unix(s.Time, 0)),
		Tags:        Tags(content.OriginHackerNews, nil),
		Category:    CategoryFor(content.OriginHackerNews),
		ReadMinutes: ReadMinutes(content.OriginHackerNews, 0),
		Origin:      content.OriginHackerNews,
		ExternalURL: link,
		Author:      s.By,
		Engagement:  content.Engagement{Score: s.Score, Comments: s.Descendants},
	})
}

// GitHubRepo converts a repository. The date is the last push, falling back
// to the last update and then creation.
func GitHubRepo(r github.Repository) Result {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return skip("repository %d has no name", r.ID)
	}
	if r.HTMLURL == "" {
		return skip("repository %q has no url", name)
	}
	var published time.Time
	for _, raw := range []string{r.PushedAt, r.UpdatedAt, r.CreatedAt} {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			published = t
			break
		}
	}
	if published.IsZero() {
		return skip("repository %q has no parseable timestamp", name)
	}

	nativeID := strconv.FormatInt(r.ID, 10)
	if r.ID == 0 {
		nativeID = strings.ToLower(r.Owner + "/" + name)
	}

	return ok(content.Item{
		ID:          content.NamespacedID(content.OriginGitHub, nativeID),
		Title:       name,
		Summary:     summaryOr(r.Description, name),
		PublishedAt: content.DateOnly(published),
		Tags:        Tags(content.OriginGitHub, r.Topics),
		Category:    CategoryFor(content.OriginGitHub),
		ReadMinutes: ReadMinutes(content.OriginGitHub, 0),
		Origin:      content.OriginGitHub,
		ExternalURL: r.HTMLURL,
		Author:      r.Owner,
		Engagement:  content.Engagement{Score: r.Stars, Forks: r.Forks},
	})
}

// RSSEntry converts a feed entry. Entry identifiers are usually URLs, so they
// are hashed into a compact id.
func RSSEntry(e rss.Entry) Result {
	if e.ID == "" {
		return skip("entry has no guid or link")
	}
	title := strings.TrimSpace(e.Title)
	if title == "" {
		return skip("entry %q has no title", e.ID)
	}
	if e.Published.IsZero() {
		return skip("entry %q has no date", e.ID)
	}
	if e.Link == "" {
		return skip("entry %q has no link", e.ID)
	}
	author := e.Author
	if author == "" {
		author = e.FeedTitle
	}

	return ok(content.Item{
		ID:          content.NamespacedID(content.OriginRSS, entryHash(e.ID)),
		Title:       title,
		Summary:     summaryOr(e.Description, title),
		PublishedAt: content.DateOnly(e.Published),
		Tags:        Tags(content.OriginRSS, e.Categories),
		Category:    CategoryFor(content.OriginRSS),
		ReadMinutes: ReadMinutes(content.OriginRSS, 0),
		Origin:      content.OriginRSS,
		ExternalURL: e.Link,
		Author:      author,
	})
}

func entryHash(id string) string {
	h := sha256.Sum256([]byte(id))
	return fmt.Sprintf("%x", h[:8])
}
