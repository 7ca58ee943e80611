// Package config loads folio settings from an embedded default file, an
// optional user file and the environment.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigYAML []byte

// Environment variables read by Load.
const (
	EnvConfig     = "FOLIO_CONFIG"
	EnvAPIURL     = "FOLIO_API_URL"
	EnvGitHubUser = "FOLIO_GITHUB_USER"
	EnvDevToUser  = "FOLIO_DEVTO_USER"
)

// Remote holds the settings every HTTP-backed source shares.
type Remote struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	Limit   int    `yaml:"limit"`
}

type DevTo struct {
	Remote       `yaml:",inline"`
	Username     string `yaml:"username"`
	Tag          string `yaml:"tag"`
	FeaturedTopN int    `yaml:"featured_top_n"`
}

type HackerNews struct {
	Remote   `yaml:",inline"`
	Scan     int      `yaml:"scan"`
	Keywords []string `yaml:"keywords"`
}

type GitHub struct {
	Remote          `yaml:",inline"`
	User            string `yaml:"user"`
	IncludeForks    bool   `yaml:"include_forks"`
	IncludeArchived bool   `yaml:"include_archived"`
}

type RSS struct {
	Enabled bool     `yaml:"enabled"`
	Limit   int      `yaml:"limit"`
	Feeds   []string `yaml:"feeds"`
}

type Sources struct {
	DevTo      DevTo      `yaml:"devto"`
	HackerNews HackerNews `yaml:"hackernews"`
	GitHub     GitHub     `yaml:"github"`
	RSS        RSS        `yaml:"rss"`
}

// Config is the complete folio configuration.
type Config struct {
	PageSize      int     `yaml:"page_size"`
	FeaturedLimit int     `yaml:"featured_limit"`
	SourceTimeout string  `yaml:"source_timeout"`
	ListenAddr    string  `yaml:"listen_addr"`
	SiteURL       string  `yaml:"site_url"`
	Sources       Sources `yaml:"sources"`

	// Path is the user file that was read, empty when only defaults apply.
	Path string `yaml:"-"`
}

// Timeout returns the parsed per-source timeout.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.SourceTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/folio/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "folio", "config.yaml")
}

// Defaults returns the embedded configuration.
func Defaults() (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads configuration in layers: embedded defaults, then the user file
// (path, else $FOLIO_CONFIG, else the XDG path), then environment
// overrides. A missing user file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		cfg.Path = path
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment. Missing files are ignored; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overlays environment overrides using getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if u := getenv(EnvAPIURL); u != "" {
		c.Sources.DevTo.BaseURL = u
		c.Sources.HackerNews.BaseURL = u
		c.Sources.GitHub.BaseURL = u
	}
	if user := getenv(EnvGitHubUser); user != "" {
		c.Sources.GitHub.User = user
	}
	if user := getenv(EnvDevToUser); user != "" {
		c.Sources.DevTo.Username = user
	}
}

// Validate reports every problem found, joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page_size must be positive, got %d", c.PageSize))
	}
	if c.FeaturedLimit <= 0 {
		errs = append(errs, fmt.Errorf("featured_limit must be positive, got %d", c.FeaturedLimit))
	}
	if d, err := time.ParseDuration(c.SourceTimeout); err != nil || d <= 0 {
		errs = append(errs, fmt.Errorf("source_timeout must be a positive duration, got %q", c.SourceTimeout))
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		errs = append(errs, errors.New("listen_addr is required"))
	}
	if c.SiteURL != "" {
		if err := checkHTTPURL(c.SiteURL); err != nil {
			errs = append(errs, fmt.Errorf("site_url: %w", err))
		}
	}

	remotes := []struct {
		name string
		r    Remote
	}{
		{"devto", c.Sources.DevTo.Remote},
		{"hackernews", c.Sources.HackerNews.Remote},
		{"github", c.Sources.GitHub.Remote},
	}
	for _, s := range remotes {
		if !s.r.Enabled {
			continue
		}
		if err := checkHTTPURL(s.r.BaseURL); err != nil {
			errs = append(errs, fmt.Errorf("sources.%s.base_url: %w", s.name, err))
		}
		if s.r.Limit <= 0 {
			errs = append(errs, fmt.Errorf("sources.%s.limit must be positive, got %d", s.name, s.r.Limit))
		}
	}
	if c.Sources.HackerNews.Enabled && c.Sources.HackerNews.Scan <= 0 {
		errs = append(errs, fmt.Errorf("sources.hackernews.scan must be positive, got %d", c.Sources.HackerNews.Scan))
	}
	if c.Sources.GitHub.Enabled && c.Sources.GitHub.User == "" {
		errs = append(errs, errors.New("sources.github.user is required when github is enabled"))
	}
	if c.Sources.RSS.Enabled {
		if c.Sources.RSS.Limit <= 0 {
			errs = append(errs, fmt.Errorf("sources.rss.limit must be positive, got %d", c.Sources.RSS.Limit))
		}
		for i, feed := range c.Sources.RSS.Feeds {
			if err := checkHTTPURL(feed); err != nil {
				errs = append(errs, fmt.Errorf("sources.rss.feeds[%d]: %w", i, err))
			}
		}
	}

	return errors.Join(errs...)
}

// WriteDefaults writes the embedded configuration to path, creating parent
// directories. An existing file is left alone.
func WriteDefaults(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, defaultConfigYAML, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func checkHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	return nil
}
