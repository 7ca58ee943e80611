package devto

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gauthierbraillon/folio/internal/logging"
)

const defaultBaseURL = "https://dev.to"

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

// WithLogger sets the logger used to report skipped articles.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logging.OrNop(logger)
	}
}

// Client is a read-only DEV.to API client.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	logger     *zap.Logger
}

// NewClient creates a new DEV.to client.
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

// FetchArticles lists published articles in the order DEV.to returns them.
// A payload that is not a JSON array fails the call; an article that does
// not decode is logged and skipped.
func (c *Client) FetchArticles(ctx context.Context, params ListParams) ([]Article, error) {
	query := url.Values{}
	if params.Username != "" {
		query.Set("username", params.Username)
	} else if params.Tag != "" {
		query.Set("tag", params.Tag)
	}
	if params.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(params.PerPage))
	}

	endpoint := c.baseURL + "/api/articles"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	body, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to parse DEV.to articles response: %w", err)
	}

	articles := make([]Article, 0, len(records))
	for i, raw := range records {
		var a articleResponse
		if err := json.Unmarshal(raw, &a); err != nil {
			c.logger.Debug("skipping DEV.to article", zap.Int("position", i), zap.Error(err))
			continue
		}
		articles = append(articles, Article{
			ID:           a.ID,
			Title:        a.Title,
			Description:  a.Description,
			BodyMarkdown: a.BodyMarkdown,
			PublishedAt:  a.PublishedAt,
			Tags:         a.TagList.values,
			ReadMinutes:  a.ReadingTimeMinutes,
			URL:          a.URL,
			CanonicalURL: a.CanonicalURL,
			Author:       a.User.Name,
			Reactions:    a.PositiveReactionsCount,
			Comments:     a.CommentsCount,
		})
	}
	return articles, nil
}

func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("DEV.to API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read DEV.to response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, handleAPIError(resp.StatusCode)
	}
	return body, nil
}

func handleAPIError(statusCode int) error {
	switch statusCode {
	case http.StatusNotFound:
		return fmt.Errorf("DEV.to API returned not found - check the configured username or tag")
	case http.StatusTooManyRequests:
		return fmt.Errorf("DEV.to API rate limit exceeded - please try again later")
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("DEV.to API server error (status %d) - please try again later", statusCode)
	default:
		return fmt.Errorf("DEV.to API error (status %d)", statusCode)
	}
}

// API response types (private - implementation detail)

type articleResponse struct {
	ID                     int64    `json:"id"`
	Title                  string   `json:"title"`
	Description            string   `json:"description"`
	BodyMarkdown           string   `json:"body_markdown"`
	PublishedAt            string   `json:"published_at"`
	TagList                tagList  `json:"tag_list"`
	ReadingTimeMinutes     int      `json:"reading_time_minutes"`
	URL                    string   `json:"url"`
	CanonicalURL           string   `json:"canonical_url"`
	PositiveReactionsCount int64    `json:"positive_reactions_count"`
	CommentsCount          int64    `json:"comments_count"`
	User                   userInfo `json:"user"`
}

type userInfo struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// tagList accepts both shapes DEV.to uses: an array on list endpoints and a
// comma-separated string on single-article endpoints.
type tagList struct {
	values []string
}

func (t *tagList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		t.values = list
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return fmt.Errorf("tag_list: %w", err)
	}
	for _, tag := range strings.Split(joined, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			t.values = append(t.values, tag)
		}
	}
	return nil
}
