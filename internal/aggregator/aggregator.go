package aggregator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gauthierbraillon/folio/internal/content"
	"github.com/gauthierbraillon/folio/internal/logging"
)

// DefaultSourceTimeout bounds each remote source so one slow API cannot
// hold back a refresh.
const DefaultSourceTimeout = 10 * time.Second

// Option configures the Aggregator.
type Option func(*Aggregator)

// WithSourceTimeout sets the per-source fetch timeout.
func WithSourceTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithLogger sets the logger used for source failures.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logging.OrNop(logger)
	}
}

// Aggregator collects and merges content from the catalog and remote sources.
type Aggregator struct {
	static  []content.Item
	sources []Source
	timeout time.Duration
	logger  *zap.Logger
}

// New creates an Aggregator over the always-available static items.
func New(static []content.Item, opts ...Option) *Aggregator {
	a := &Aggregator{
		static:  static,
		timeout: DefaultSourceTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddSource registers a remote source. Registration order decides merge order.
func (a *Aggregator) AddSource(src Source) {
	a.sources = append(a.sources, src)
}

// Collect fetches every source concurrently and merges the results. It never
// fails: broken sources are reported in Aggregation.Failures.
func (a *Aggregator) Collect(ctx context.Context) Aggregation {
	outcomes := make([]Outcome, len(a.sources))

	var g errgroup.Group
	for i, src := range a.sources {
		i, src := i, src
		g.Go(func() error {
			outcomes[i] = a.fetch(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	agg := Merge(a.static, outcomes)
	a.logger.Info("content aggregated",
		zap.Int("items", len(agg.Items)),
		zap.Int("sources", len(a.sources)),
		zap.Int("failed", len(agg.Failures)))
	return agg
}

type fetchResult struct {
	items []content.Item
	err   error
}

// fetch runs one source under its timeout. A source that ignores its context
// is abandoned when the timeout fires.
func (a *Aggregator) fetch(ctx context.Context, src Source) Outcome {
	origin := src.Origin()
	fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	done := make(chan fetchResult, 1)
	start := time.Now()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fetchResult{err: fmt.Errorf("source panicked: %v", r)}
			}
		}()
		items, err := src.Fetch(fetchCtx)
		done <- fetchResult{items: items, err: err}
	}()

	var res fetchResult
	select {
	case res = <-done:
	case <-fetchCtx.Done():
		res = fetchResult{err: fmt.Errorf("no answer within %s: %w", a.timeout, fetchCtx.Err())}
	}

	if res.err != nil {
		a.logger.Warn("source unavailable", zap.String("origin", string(origin)), zap.Error(res.err))
		return Failed(origin, res.err)
	}
	a.logger.Debug("source fetched",
		zap.String("origin", string(origin)),
		zap.Int("items", len(res.items)),
		zap.Duration("took", time.Since(start)))
	return Succeeded(origin, res.items)
}

// Merge builds the aggregate: static items first, then each successful
// outcome in the given order. An ID already present is not added again, so
// authored content wins over remote duplicates.
func Merge(static []content.Item, outcomes []Outcome) Aggregation {
	total := len(static)
	for _, o := range outcomes {
		total += len(o.Items)
	}

	agg := Aggregation{Items: make([]content.Item, 0, total)}
	seen := make(map[string]bool, total)
	add := func(items []content.Item) {
		for _, item := range items {
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			agg.Items = append(agg.Items, item)
		}
	}

	add(static)
	for _, o := range outcomes {
		if o.Err != nil {
			agg.Failures = append(agg.Failures, &FetchError{Origin: o.Origin, Err: o.Err})
			continue
		}
		add(o.Items)
	}
	return agg
}
