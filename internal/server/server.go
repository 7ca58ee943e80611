// Package server exposes the aggregated content through a read-only JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/gauthierbraillon/folio/internal/aggregator"
	"github.com/gauthierbraillon/folio/internal/chat"
	"github.com/gauthierbraillon/folio/internal/logging"
	"github.com/gauthierbraillon/folio/internal/query"
)

const (
	maxPageSize     = 50
	shutdownTimeout = 5 * time.Second
	refreshTimeout  = time.Minute
)

// Collector rebuilds the aggregate. *aggregator.Aggregator satisfies it.
type Collector interface {
	Collect(ctx context.Context) aggregator.Aggregation
}

// Server serves one shared content snapshot.
type Server struct {
	session   *query.Session
	responder *chat.Responder
	collector Collector
	pageSize  int
	logger    *zap.Logger

	notice  atomic.Pointer[refreshStatus]
	refresh singleflight.Group
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for requests and refreshes.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logging.OrNop(logger)
	}
}

// WithPageSize sets the page size used when a request names none.
func WithPageSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithCollector enables POST /api/refresh.
func WithCollector(c Collector) Option {
	return func(s *Server) {
		s.collector = c
	}
}

// New creates a server over session, answering chat with responder.
func New(session *query.Session, responder *chat.Responder, opts ...Option) *Server {
	s := &Server{
		session:   session,
		responder: responder,
		pageSize:  query.DefaultPageSize,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.notice.Store(&refreshStatus{})
	return s
}

// SetAggregation installs a freshly collected aggregate.
func (s *Server) SetAggregation(agg aggregator.Aggregation) {
	s.session.Replace(agg.Items)
	s.notice.Store(newRefreshStatus(agg))
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
