// Package sources binds each remote client to its normalizer so the
// aggregator can treat every origin the same way.
package sources

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gauthierbraillon/folio/internal/content"
	"github.com/gauthierbraillon/folio/internal/devto"
	"github.com/gauthierbraillon/folio/internal/github"
	"github.com/gauthierbraillon/folio/internal/hackernews"
	"github.com/gauthierbraillon/folio/internal/logging"
	"github.com/gauthierbraillon/folio/internal/normalize"
	"github.com/gauthierbraillon/folio/internal/rss"
)

// DevTo lists DEV.to articles.
type DevTo struct {
	Client       *devto.Client
	Params       devto.ListParams
	FeaturedTopN int
	Logger       *zap.Logger
}

func (s *DevTo) Origin() content.Origin { return content.OriginDevTo }

func (s *DevTo) Fetch(ctx context.Context) ([]content.Item, error) {
	articles, err := s.Client.FetchArticles(ctx, s.Params)
	if err != nil {
		return nil, err
	}
	return normalize.Batch(s.Logger, content.OriginDevTo, articles, func(i int, a devto.Article) normalize.Result {
		return normalize.DevToArticle(a, i, s.FeaturedTopN)
	}), nil
}

// HackerNews scans top stories and keeps those matching the topic allow-list.
type HackerNews struct {
	Client   *hackernews.Client
	Scan     int
	Limit    int
	Keywords []string
	Logger   *zap.Logger
}

func (s *HackerNews) Origin() content.Origin { return content.OriginHackerNews }

func (s *HackerNews) Fetch(ctx context.Context) ([]content.Item, error) {
	stories, err := s.Client.FetchStories(ctx, s.Scan)
	if err != nil {
		return nil, err
	}
	stories = hackernews.FilterByKeywords(stories, s.Keywords)
	if s.Limit > 0 && len(stories) > s.Limit {
		stories = stories[:s.Limit]
	}
	return normalize.Batch(s.Logger, content.OriginHackerNews, stories, func(_ int, st hackernews.Story) normalize.Result {
		return normalize.HackerNewsStory(st)
	}), nil
}

// GitHub lists a user's public repositories.
type GitHub struct {
	Client          *github.Client
	User            string
	Limit           int
	IncludeForks    bool
	IncludeArchived bool
	Logger          *zap.Logger
}

func (s *GitHub) Origin() content.Origin { return content.OriginGitHub }

func (s *GitHub) Fetch(ctx context.Context) ([]content.Item, error) {
	repos, err := s.Client.FetchRepos(ctx, s.User, s.Limit)
	if err != nil {
		return nil, err
	}
	kept := repos[:0]
	for _, r := range repos {
		if (r.Fork && !s.IncludeForks) || (r.Archived && !s.IncludeArchived) {
			continue
		}
		kept = append(kept, r)
	}
	return normalize.Batch(s.Logger, content.OriginGitHub, kept, func(_ int, r github.Repository) normalize.Result {
		return normalize.GitHubRepo(r)
	}), nil
}

// RSS reads several feeds as one origin. A single failing feed is logged and
// skipped; the origin fails only when every feed fails.
type RSS struct {
	Client *rss.Client
	Feeds  []string
	Limit  int
	Logger *zap.Logger
}

func (s *RSS) Origin() content.Origin { return content.OriginRSS }

func (s *RSS) Fetch(ctx context.Context) ([]content.Item, error) {
	logger := logging.OrNop(s.Logger)

	var (
		entries []rss.Entry
		errs    []error
	)
	for _, feedURL := range s.Feeds {
		got, err := s.Client.FetchFeed(ctx, feedURL, s.Limit)
		if err != nil {
			logger.Warn("feed unavailable", zap.String("feed", feedURL), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		entries = append(entries, got...)
	}
	if len(s.Feeds) > 0 && len(errs) == len(s.Feeds) {
		return nil, fmt.Errorf("all %d feeds failed: %w", len(s.Feeds), errors.Join(errs...))
	}
	return normalize.Batch(logger, content.OriginRSS, entries, func(_ int, e rss.Entry) normalize.Result {
		return normalize.RSSEntry(e)
	}), nil
}
