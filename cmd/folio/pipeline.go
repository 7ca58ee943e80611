package main

import (
	"context"
	"fmt"

	"github.com/gauthierbraillon/folio/internal/aggregator"
	"github.com/gauthierbraillon/folio/internal/catalog"
	"github.com/gauthierbraillon/folio/internal/devto"
	"github.com/gauthierbraillon/folio/internal/github"
	"github.com/gauthierbraillon/folio/internal/hackernews"
	"github.com/gauthierbraillon/folio/internal/rss"
	"github.com/gauthierbraillon/folio/internal/sources"
)

// newAggregator wires the catalog and every enabled source. Offline runs
// get the catalog alone.
func (a *app) newAggregator() (*aggregator.Aggregator, error) {
	static, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	agg := aggregator.New(static,
		aggregator.WithSourceTimeout(a.cfg.Timeout()),
		aggregator.WithLogger(a.logger))
	if a.offline {
		return agg, nil
	}

	s := a.cfg.Sources
	if s.DevTo.Enabled {
		agg.AddSource(&sources.DevTo{
			Client:       devto.NewClient(
				devto.WithBaseURL(s.DevTo.BaseURL),
				devto.WithLogger(a.logger)),
			Params:       devto.ListParams{Username: s.DevTo.Username, Tag: s.DevTo.Tag, PerPage: s.DevTo.Limit},
			FeaturedTopN: s.DevTo.FeaturedTopN,
			Logger:       a.logger,
		})
	}
	if s.HackerNews.Enabled {
		agg.AddSource(&sources.HackerNews{
			Client: hackernews.NewClient(
				hackernews.WithBaseURL(s.HackerNews.BaseURL),
				hackernews.WithLogger(a.logger)),
			Scan:     s.HackerNews.Scan,
			Limit:    s.HackerNews.Limit,
			Keywords: s.HackerNews.Keywords,
			Logger:   a.logger,
		})
	}
	if s.GitHub.Enabled {
		agg.AddSource(&sources.GitHub{
			Client:       github.NewClient(
				github.WithBaseURL(s.GitHub.BaseURL),
				github.WithLogger(a.logger)),
			User:         s.GitHub.User,
			Limit:        s.GitHub.Limit,
			IncludeForks:    s.GitHub.IncludeForks,
			IncludeArchived: s.GitHub.IncludeArchived,
			Logger:          a.logger,
		})
	}
	if s.RSS.Enabled && len(s.RSS.Feeds) > 0 {
		agg.AddSource(&sources.RSS{
			Client: rss.NewClient(),
			Feeds:  s.RSS.Feeds,
			Limit:  s.RSS.Limit,
			Logger: a.logger,
		})
	}
	return agg, nil
}

// collect builds the aggregate once.
func (a *app) collect(ctx context.Context) (aggregator.Aggregation, error) {
	agg, err := a.newAggregator()
	if err != nil {
		return aggregator.Aggregation{}, err
	}
	return agg.Collect(ctx), nil
}
