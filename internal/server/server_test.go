package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gauthierbraillon/folio/internal/aggregator"
	"github.com/gauthierbraillon/folio/internal/catalog"
	"github.com/gauthierbraillon/folio/internal/chat"
	"github.com/gauthierbraillon/folio/internal/content"
	"github.com/gauthierbraillon/folio/internal/query"
)

type fakeCollector struct {
	calls atomic.Int32
	agg   aggregator.Aggregation
}

func (f *fakeCollector) Collect(ctx context.Context) aggregator.Aggregation {
	f.calls.Add(1)
	return f.agg
}

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	items, err := catalog.Load()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	responder, err := chat.Default()
	if err != nil {
		t.Fatalf("loading chat rules: %v", err)
	}
	srv := httptest.NewServer(New(query.NewSession(items, query.DefaultFeaturedLimit), responder, opts...).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

type pageBody struct {
	Items []struct {
		ID       string `json:"id"`
		Category string `json:"category"`
	} `json:"items"`
	TotalCount int    `json:"total_count"`
	TotalPages int    `json:"total_pages"`
	PageNumber int    `json:"page_number"`
	Notice     string `json:"notice"`
}

func TestAC500_Content_DefaultsToNewestFirstPage(t *testing.T) {
	srv := newTestServer(t)

	var body pageBody
	status := getJSON(t, srv.URL+"/api/content", &body)

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(body.Items) != 6 || body.TotalPages != 3 || body.TotalCount != 15 {
		t.Errorf("expected 6 of 15 items over 3 pages, got %d of %d over %d", len(body.Items), body.TotalCount, body.TotalPages)
	}
	if body.Items[0].ID != "local-optimizing-core-web-vitals" {
		t.Errorf("newest post should come first, got %q", body.Items[0].ID)
	}
}

func TestAC501_Content_AppliesFilters(t *testing.T) {
	srv := newTestServer(t)

	var body pageBody
	getJSON(t, srv.URL+"/api/content?q=react&page=3", &body)
	if body.TotalCount != 2 || body.PageNumber != 1 {
		t.Errorf("react search should give 2 items on page 1, got %d on page %d", body.TotalCount, body.PageNumber)
	}

	body = pageBody{}
	getJSON(t, srv.URL+"/api/content?category=css&page_size=50", &body)
	for _, item := range body.Items {
		if item.Category != "CSS" {
			t.Errorf("category filter leaked %q", item.Category)
		}
	}

	body = pageBody{}
	getJSON(t, srv.URL+"/api/content?origin=github", &body)
	if body.TotalCount != 0 || body.Items == nil {
		t.Errorf("no github items are loaded, expected an empty list, got %+v", body)
	}
}

func TestAC502_Content_RejectsInvalidParameters(t *testing.T) {
	srv := newTestServer(t)

	for _, q := range []string{
		"sort=random",
		"category=Knitting",
		"origin=myspace",
		"page=zero",
		"page=0",
		"page_size=-2",
		"page_size=500",
	} {
		t.Run(q, func(t *testing.T) {
			var body map[string]string
			status := getJSON(t, srv.URL+"/api/content?"+q, &body)
			if status != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", status)
			}
			if body["error"] == "" {
				t.Error("error response should explain the problem")
			}
		})
	}
}

func TestAC503_Featured_ReturnsCappedFlaggedItems(t *testing.T) {
	srv := newTestServer(t)

	var body pageBody
	getJSON(t, srv.URL+"/api/featured", &body)
	if len(body.Items) != 3 {
		t.Errorf("expected 3 featured posts, got %d", len(body.Items))
	}
}

func TestAC504_Categories_ListsVocabularyWithCounts(t *testing.T) {
	srv := newTestServer(t)

	var body struct {
		Categories []categoryCount `json:"categories"`
	}
	getJSON(t, srv.URL+"/api/categories", &body)

	if len(body.Categories) != len(content.Categories())+1 {
		t.Fatalf("expected All plus every category, got %+v", body.Categories)
	}
	if body.Categories[0].Name != "All" || body.Categories[0].Count != 15 {
		t.Errorf("first entry should be All with 15 items, got %+v", body.Categories[0])
	}
}

func TestAC505_Chat_AnswersQuestions(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/chat", "application/json", strings.NewReader(`{"question":"What is your tech stack?"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || !strings.Contains(body.Answer, "Go") {
		t.Errorf("expected a stack answer, got %d %q", resp.StatusCode, body.Answer)
	}
}

func TestAC505_Chat_RejectsBadBodies(t *testing.T) {
	srv := newTestServer(t)

	for _, payload := range []string{`{`, `{"question":"   "}`} {
		resp, err := http.Post(srv.URL+"/api/chat", "application/json", strings.NewReader(payload))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("payload %q: expected 400, got %d", payload, resp.StatusCode)
		}
	}
}

func TestAC506_Refresh_SwapsSnapshotAndReportsFailures(t *testing.T) {
	remote := content.Item{
		ID: "devto-1", Title: "Remote", PublishedAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		Tags: []string{"go"}, Category: content.CategoryProgramming, ReadMinutes: 3,
		Origin: content.OriginDevTo, ExternalURL: "https://dev.to/x",
	}
	collector := &fakeCollector{agg: aggregator.Merge(
		[]content.Item{remote},
		[]aggregator.Outcome{aggregator.Failed(content.OriginGitHub, errors.New("rate limited"))},
	)}
	srv := newTestServer(t, WithCollector(collector))

	resp, err := http.Post(srv.URL+"/api/refresh", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	var status refreshStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if status.Count != 1 || len(status.Failures) != 1 || status.Failures[0] != "github" {
		t.Errorf("unexpected refresh status %+v", status)
	}

	var body pageBody
	getJSON(t, srv.URL+"/api/content", &body)
	if body.TotalCount != 1 || body.Items[0].ID != "devto-1" {
		t.Errorf("content should come from the new snapshot, got %+v", body)
	}
	if !strings.Contains(body.Notice, "github") {
		t.Errorf("content should carry the partial-failure notice, got %q", body.Notice)
	}
}

// slowCollector reports every origin as failed when its context ends before
// the collection completes.
type slowCollector struct {
	delay time.Duration
	agg   aggregator.Aggregation
}

func (c *slowCollector) Collect(ctx context.Context) aggregator.Aggregation {
	select {
	case <-time.After(c.delay):
		return c.agg
	case <-ctx.Done():
		return aggregator.Merge(nil, []aggregator.Outcome{aggregator.Failed(content.OriginDevTo, ctx.Err())})
	}
}

func TestAC506_Refresh_SurvivesCallerDisconnect(t *testing.T) {
	remote := content.Item{
		ID: "devto-1", Title: "Remote", PublishedAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		Tags: []string{"go"}, Category: content.CategoryProgramming, ReadMinutes: 3,
		Origin: content.OriginDevTo, ExternalURL: "https://dev.to/x",
	}
	collector := &slowCollector{delay: 200 * time.Millisecond, agg: aggregator.Merge([]content.Item{remote}, nil)}
	srv := newTestServer(t, WithCollector(collector))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL+"/api/refresh", nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp, err := http.DefaultClient.Do(req); err == nil {
		resp.Body.Close()
		t.Fatal("expected the client to give up before the refresh finished")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		var body pageBody
		getJSON(t, srv.URL+"/api/content", &body)
		if body.TotalCount == 1 && body.Items[0].ID == "devto-1" {
			if body.Notice != "" {
				t.Errorf("completed refresh should carry no notice, got %q", body.Notice)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("refresh should complete after the caller disconnects, snapshot has %d items and notice %q", body.TotalCount, body.Notice)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestAC506_Refresh_UnavailableOffline(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/refresh", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a collector, got %d", resp.StatusCode)
	}
}

func TestAC507_Healthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestAC508_Run_StopsOnCancel(t *testing.T) {
	items, _ := catalog.Load()
	responder, _ := chat.Default()
	s := New(query.NewSession(items, 3), responder)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("graceful shutdown should not error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
