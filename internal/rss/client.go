package rss

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mmcdole/gofeed"
)

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client fetches and parses RSS/Atom feeds.
type Client struct {
	httpClient HTTPClient
	parser     *gofeed.Parser
}

// NewClient creates a new feed client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		parser:     gofeed.NewParser(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchFeed fetches a feed and returns at most limit entries (all when limit <= 0).
func (c *Client) FetchFeed(ctx context.Context, feedURL string, limit int) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed for %s: %w", feedURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned HTTP %d for %s", resp.StatusCode, feedURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	feed, err := c.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}

	items := feed.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entry := Entry{
			ID:          item.GUID,
			Title:       item.Title,
			Description: item.Description,
			Link:        item.Link,
			Categories:  item.Categories,
			FeedTitle:   feed.Title,
		}
		if entry.ID == "" {
			entry.ID = item.Link
		}
		if entry.Description == "" {
			entry.Description = item.Content
		}
		if item.Author != nil {
			entry.Author = item.Author.Name
		}
		switch {
		case item.PublishedParsed != nil:
			entry.Published = *item.PublishedParsed
		case item.UpdatedParsed != nil:
			entry.Published = *item.UpdatedParsed
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
