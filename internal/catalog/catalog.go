// Package catalog provides the authored posts that are always available,
// whether or not any remote source answers.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gauthierbraillon/folio/internal/content"
)

//go:embed posts.yaml
var postsYAML []byte

const dateLayout = "2006-01-02"

type document struct {
	Posts []post `yaml:"posts"`
}

type post struct {
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title"`
	Summary     string   `yaml:"summary"`
	Date        string   `yaml:"date"`
	Tags        []string `yaml:"tags"`
	Category    string   `yaml:"category"`
	ReadMinutes int      `yaml:"read_minutes"`
	Featured    bool     `yaml:"featured"`
	Author      string   `yaml:"author"`
}

// Load returns the embedded catalog.
func Load() ([]content.Item, error) {
	return Parse(postsYAML)
}

// Parse decodes a catalog document. Authored data is trusted, so any invalid
// post fails the whole load instead of being skipped.
func Parse(data []byte) ([]content.Item, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	items := make([]content.Item, 0, len(doc.Posts))
	seen := make(map[string]bool, len(doc.Posts))
	for i, p := range doc.Posts {
		item, err := p.toItem()
		if err != nil {
			return nil, fmt.Errorf("catalog post %d: %w", i+1, err)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("catalog post %d: duplicate slug %q", i+1, p.Slug)
		}
		seen[item.ID] = true
		items = append(items, item)
	}
	return items, nil
}

func (p post) toItem() (content.Item, error) {
	slug := strings.TrimSpace(p.Slug)
	if slug == "" {
		return content.Item{}, fmt.Errorf("slug is required")
	}

	published, err := time.Parse(dateLayout, strings.TrimSpace(p.Date))
	if err != nil {
		return content.Item{}, fmt.Errorf("post %q: invalid date %q (want YYYY-MM-DD)", slug, p.Date)
	}

	summary := strings.TrimSpace(p.Summary)
	if summary == "" {
		summary = p.Title
	}

	item := content.Item{
		ID:          content.NamespacedID(content.OriginLocal, slug),
		Title:       strings.TrimSpace(p.Title),
		Summary:     summary,
		PublishedAt: content.DateOnly(published),
		Tags:        p.Tags,
		Category:    content.ParseCategory(p.Category),
		ReadMinutes: p.ReadMinutes,
		Featured:    p.Featured,
		Origin:      content.OriginLocal,
		Slug:        slug,
		Author:      p.Author,
	}
	if err := item.Validate(); err != nil {
		return content.Item{}, err
	}
	return item, nil
}
