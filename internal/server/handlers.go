package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gauthierbraillon/folio/internal/aggregator"
	"github.com/gauthierbraillon/folio/internal/content"
	"github.com/gauthierbraillon/folio/internal/query"
)

type refreshStatus struct {
	Count    int      `json:"count"`
	Failures []string `json:"failures"`
	Notice   string   `json:"notice,omitempty"`
}

func newRefreshStatus(agg aggregator.Aggregation) *refreshStatus {
	failures := make([]string, 0, len(agg.Failures))
	for _, f := range agg.Failures {
		failures = append(failures, string(f.Origin))
	}
	return &refreshStatus{Count: len(agg.Items), Failures: failures, Notice: agg.Notice()}
}

type contentResponse struct {
	query.Page
	Notice string `json:"notice,omitempty"`
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) error {
	d, err := s.descriptorFrom(r.URL.Query())
	if err != nil {
		return badRequest(err)
	}
	page := query.Evaluate(s.session.Items(), d)
	respondJSON(w, http.StatusOK, contentResponse{Page: page, Notice: s.notice.Load().Notice})
	return nil
}

// descriptorFrom reads q, category, origin, sort, page and page_size.
// origin may repeat or hold a comma-separated list.
func (s *Server) descriptorFrom(v url.Values) (query.Descriptor, error) {
	d := query.NewDescriptor()
	d.PageSize = s.pageSize
	d.Search = v.Get("q")

	category, err := query.ParseCategoryFilter(v.Get("category"))
	if err != nil {
		return d, err
	}
	d.Category = category

	if d.Sort, err = query.ParseSortKey(v.Get("sort")); err != nil {
		return d, err
	}

	for _, raw := range v["origin"] {
		for _, name := range strings.Split(raw, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			o, err := content.ParseOrigin(name)
			if err != nil {
				return d, err
			}
			d.Origins = append(d.Origins, o)
		}
	}

	if d.Page, err = positiveInt(v, "page", 1); err != nil {
		return d, err
	}
	if d.PageSize, err = positiveInt(v, "page_size", d.PageSize); err != nil {
		return d, err
	}
	if d.PageSize > maxPageSize {
		return d, fmt.Errorf("page_size must be at most %d", maxPageSize)
	}
	return d, nil
}

func positiveInt(v url.Values, key string, fallback int) (int, error) {
	raw := v.Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return n, nil
}

func (s *Server) handleFeatured(w http.ResponseWriter, r *http.Request) error {
	respondJSON(w, http.StatusOK, map[string]any{"items": s.session.Featured()})
	return nil
}

type categoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) error {
	items := s.session.Items()
	counts := make(map[content.Category]int, len(items))
	for _, item := range items {
		counts[item.Category]++
	}

	out := []categoryCount{{Name: query.CategoryAll, Count: len(items)}}
	for _, c := range content.Categories() {
		out = append(out, categoryCount{Name: string(c), Count: counts[c]})
	}
	respondJSON(w, http.StatusOK, map[string]any{"categories": out})
	return nil
}

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) error {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		return badRequest(fmt.Errorf("invalid JSON body: %w", err))
	}
	if strings.TrimSpace(req.Question) == "" {
		return badRequest(errors.New("question is required"))
	}
	respondJSON(w, http.StatusOK, chatResponse{Question: req.Question, Answer: s.responder.Respond(req.Question)})
	return nil
}

// handleRefresh recollects every source and swaps the snapshot. Concurrent
// refresh requests share one collection, which outlives any single caller.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) error {
	if s.collector == nil {
		return &HTTPError{Code: http.StatusServiceUnavailable, Message: "refresh is disabled in offline mode"}
	}

	v, _, _ := s.refresh.Do("refresh", func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), refreshTimeout)
		defer cancel()

		agg := s.collector.Collect(ctx)
		s.SetAggregation(agg)
		s.logger.Info("content refreshed",
			zap.Int("items", len(agg.Items)),
			zap.Int("failed_origins", len(agg.Failures)))
		return s.notice.Load(), nil
	})
	respondJSON(w, http.StatusOK, v)
	return nil
}
