package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/gauthierbraillon/folio/internal/logging"
)

const defaultBaseURL = "https://api.github.com"

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
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger used to report skipped repositories.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logging.OrNop(logger)
	}
}

// Client is an unauthenticated GitHub REST client.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	logger     *zap.Logger
}

// NewClient creates a new GitHub client.
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

// FetchRepos lists a user's public repositories, most recently updated first.
// Repositories that do not decode are logged and skipped.
func (c *Client) FetchRepos(ctx context.Context, user string, limit int) ([]Repository, error) {
	if strings.TrimSpace(user) == "" {
		return nil, fmt.Errorf("GitHub user is required")
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=%d", c.baseURL, url.PathEscape(user), limit)
	body, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to parse GitHub repositories response: %w", err)
	}

	repos := make([]Repository, 0, len(records))
	for i, raw := range records {
		var r repoResponse
		if err := json.Unmarshal(raw, &r); err != nil {
			c.logger.Debug("skipping GitHub repository", zap.Int("position", i), zap.Error(err))
			continue
		}
		license := ""
		if r.License != nil {
			license = r.License.Name
		}
		repos = append(repos, Repository{
			ID:          r.ID,
			Name:        r.Name,
			FullName:    r.FullName,
			Description: r.Description,
			HTMLURL:     r.HTMLURL,
			Stars:       r.StargazersCount,
			Forks:       r.ForksCount,
			OpenIssues:  r.OpenIssuesCount,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
			PushedAt:    r.PushedAt,
			License:     license,
			Topics:      r.Topics,
			Owner:       r.Owner.Login,
			Language:    r.Language,
			Fork:        r.Fork,
			Archived:    r.Archived,
		})
	}
	return repos, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GitHub API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read GitHub response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, handleAPIError(resp)
	}
	return body, nil
}

func handleAPIError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("GitHub API returned not found - check the configured user")
	case http.StatusForbidden, http.StatusTooManyRequests:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("GitHub API rate limit exceeded - please try again later")
		}
		return fmt.Errorf("GitHub API access denied")
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("GitHub API server error (status %d) - please try again later", resp.StatusCode)
	default:
		return fmt.Errorf("GitHub API error (status %d)", resp.StatusCode)
	}
}

// API response types (private - implementation detail)

type repoResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Description     string   `json:"description"`
	HTMLURL         string   `json:"html_url"`
	StargazersCount int64    `json:"stargazers_count"`
	ForksCount      int64    `json:"forks_count"`
	OpenIssuesCount int64    `json:"open_issues_count"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	PushedAt        string   `json:"pushed_at"`
	Topics          []string `json:"topics"`
	Language        string   `json:"language"`
	Fork            bool     `json:"fork"`
	Archived        bool     `json:"archived"`
	License         *struct {
		Name string `json:"name"`
	} `json:"license"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
}
