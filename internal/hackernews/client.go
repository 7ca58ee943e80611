package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gauthierbraillon/folio/internal/logging"
)

const (
	defaultBaseURL  = "https://hacker-news.firebaseio.com"
	itemConcurrency = 8
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

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithLogger sets the logger used to report skipped items.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logging.OrNop(logger)
	}
}

// Client is a read-only Hacker News API client.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	logger     *zap.Logger
}

// NewClient creates a new Hacker News client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchStories returns up to scan top stories in ranking order.
// Failing the top-stories list fails the call; failing an individual item
// only drops that item.
func (c *Client) FetchStories(ctx context.Context, scan int) ([]Story, error) {
	body, err := c.doRequest(ctx, c.baseURL+"/v0/topstories.json")
	if err != nil {
		return nil, err
	}

	var ids []int64
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse Hacker News top stories: %w", err)
	}
	if scan > 0 && len(ids) > scan {
		ids = ids[:scan]
	}

	slots := make([]*Story, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(itemConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			story, err := c.fetchItem(gctx, id)
			if err != nil {
				c.logger.Debug("skipping Hacker News item", zap.Int64("id", id), zap.Error(err))
				return nil
			}
			slots[i] = story
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("Hacker News fetch interrupted: %w", err)
	}

	stories := make([]Story, 0, len(slots))
	for _, s := range slots {
		if s != nil {
			stories = append(stories, *s)
		}
	}
	return stories, nil
}

func (c *Client) fetchItem(ctx context.Context, id int64) (*Story, error) {
	body, err := c.doRequest(ctx, fmt.Sprintf("%s/v0/item/%d.json", c.baseURL, id))
	if err != nil {
		return nil, err
	}

	var item itemResponse
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("failed to parse item %d: %w", id, err)
	}
	if item.ID == 0 {
		return nil, fmt.Errorf("item %d does not exist", id)
	}
	if item.Deleted || item.Dead {
		return nil, fmt.Errorf("item %d was removed", id)
	}
	if item.Type != "story" {
		return nil, fmt.Errorf("item %d is a %s, not a story", id, item.Type)
	}

	return &Story{
		ID:          item.ID,
		Title:       item.Title,
		Text:        item.Text,
		URL:         item.URL,
		Time:        item.Time,
		By:          item.By,
		Score:       item.Score,
		Descendants: item.Descendants,
	}, nil
}

// FilterByKeywords keeps stories whose title or text mentions any keyword,
// case-insensitively. An empty keyword list keeps everything.
func FilterByKeywords(stories []Story, keywords []string) []Story {
	if len(keywords) == 0 {
		return stories
	}
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}

	kept := make([]Story, 0, len(stories))
	for _, s := range stories {
		haystack := strings.ToLower(s.Title + " " + s.Text)
		for _, k := range lowered {
			if strings.Contains(haystack, k) {
				kept = append(kept, s)
				break
			}
		}
	}
	return kept
}

// DiscussionURL returns the Hacker News comments page for a story.
func DiscussionURL(id int64) string {
	return fmt.Sprintf("https://news.ycombinator.com/item?id=%d", id)
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Hacker News API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Hacker News response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Hacker News API error (status %d) - please try again later", resp.StatusCode)
	}
	return body, nil
}

// API response types (private - implementation detail)

type itemResponse struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	URL         string `json:"url"`
	Time        int64  `json:"time"`
	By          string `json:"by"`
	Score       int64  `json:"score"`
	Descendants int64  `json:"descendants"`
	Deleted     bool   `json:"deleted"`
	Dead        bool   `json:"dead"`
}
